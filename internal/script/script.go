// Package script runs user Lua scripts with the standard library set djecho exposes.
package script

import (
	"bytes"
	"sync"

	"github.com/djecho/djecho/filesystem"
	libs "github.com/metafates/mangal-lua-libs"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

var bytecodeCache sync.Map

// NewState returns a Lua state with mangal's libraries and http_tls preloaded.
func NewState() *lua.LState {
	L := lua.NewState()
	libs.Preload(L)
	RegisterTLSClient(L)
	return L
}

// Load runs the script at path in L. Compiled prototypes are cached per path
// for the life of the process.
func Load(L *lua.LState, path string) error {
	proto, err := compile(path)
	if err != nil {
		return err
	}

	L.Push(L.NewFunctionFromProto(proto))
	return L.PCall(0, lua.MultRet, nil)
}

func compile(path string) (*lua.FunctionProto, error) {
	if cached, ok := bytecodeCache.Load(path); ok {
		return cached.(*lua.FunctionProto), nil
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, err
	}

	chunk, err := parse.Parse(bytes.NewReader(data), path)
	if err != nil {
		return nil, err
	}

	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return nil, err
	}

	bytecodeCache.Store(path, proto)
	return proto, nil
}

// Forget drops the cached prototype for path, e.g. after the file was replaced.
func Forget(path string) {
	bytecodeCache.Delete(path)
}
