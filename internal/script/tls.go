package script

import (
	"context"

	"github.com/djecho/djecho/internal/cache"
	"github.com/djecho/djecho/network"
	lua "github.com/yuin/gopher-lua"
)

// RegisterTLSClient exposes network.DoTLS to Lua:
//
//	http_tls.get(url [, headers])  -> body
//	http_tls.request({method, url, headers, body, cache}) -> {status, body}
func RegisterTLSClient(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "get", L.NewFunction(tlsGet))
	L.SetField(mod, "request", L.NewFunction(tlsRequest))
	L.SetGlobal("http_tls", mod)
}

func tlsGet(L *lua.LState) int {
	url := L.CheckString(1)
	headers := tableToMap(L.OptTable(2, nil))

	resp, err := network.DoTLS(context.Background(), "GET", url, headers, "")
	if err != nil {
		L.RaiseError("http_tls.get failed: %s", err.Error())
		return 0
	}

	L.Push(lua.LString(resp.Body))
	return 1
}

func tlsRequest(L *lua.LState) int {
	opts := L.CheckTable(1)

	method := stringField(opts, "method", "GET")
	url := stringField(opts, "url", "")
	body := stringField(opts, "body", "")
	useCache := lua.LVAsBool(opts.RawGetString("cache"))

	if url == "" {
		L.RaiseError("http_tls.request: url is required")
		return 0
	}

	var headers map[string]string
	if tbl, ok := opts.RawGetString("headers").(*lua.LTable); ok {
		headers = tableToMap(tbl)
	}

	key := cache.Key(method, url, body)

	var resp network.Response
	if !useCache || !cache.Read(key, &resp) {
		var err error
		resp, err = network.DoTLS(context.Background(), method, url, headers, body)
		if err != nil {
			L.RaiseError("http_tls.request failed: %s", err.Error())
			return 0
		}

		if useCache && resp.Status == 200 {
			_ = cache.Write(key, resp)
		}
	}

	result := L.NewTable()
	L.SetField(result, "status", lua.LNumber(resp.Status))
	L.SetField(result, "body", lua.LString(resp.Body))
	L.Push(result)
	return 1
}

func tableToMap(tbl *lua.LTable) map[string]string {
	m := make(map[string]string)
	if tbl == nil {
		return m
	}

	tbl.ForEach(func(k, v lua.LValue) {
		m[k.String()] = v.String()
	})
	return m
}

func stringField(tbl *lua.LTable, key, def string) string {
	val := tbl.RawGetString(key)
	if val == lua.LNil {
		return def
	}
	return val.String()
}
