package selector

import (
	"context"
	"fmt"
	"sync"

	"github.com/djecho/djecho/constant"
	"github.com/djecho/djecho/internal/script"
	"github.com/djecho/djecho/util"
	lua "github.com/yuin/gopher-lua"
)

// Lua runs a user script defining SelectTrack(vibe). The function returns
// either a URI string or a table {uri = ..., title = ...}.
type Lua struct {
	Path string

	name  string
	mu    sync.Mutex
	state *lua.LState
}

func NewLua(path string) (*Lua, error) {
	state := script.NewState()
	if err := script.Load(state, path); err != nil {
		state.Close()
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	name := util.FileStem(path)
	if state.GetGlobal(constant.SelectTrackFn).Type() != lua.LTFunction {
		state.Close()
		return nil, fmt.Errorf("function %s is required but not defined in %s", constant.SelectTrackFn, name)
	}

	return &Lua{Path: path, name: name, state: state}, nil
}

func (l *Lua) Name() string {
	return l.name
}

func (l *Lua) Select(ctx context.Context, vibe string) (Track, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.SetContext(ctx)
	defer l.state.RemoveContext()

	err := l.state.CallByParam(lua.P{
		Fn:      l.state.GetGlobal(constant.SelectTrackFn),
		NRet:    1,
		Protect: true,
	}, lua.LString(vibe))
	if err != nil {
		return Track{}, fmt.Errorf("%s: %w", l.name, err)
	}

	ret := l.state.Get(-1)
	l.state.Pop(1)

	var track Track
	switch v := ret.(type) {
	case lua.LString:
		track.URI = string(v)
	case *lua.LTable:
		track.URI = lua.LVAsString(v.RawGetString("uri"))
		track.Title = lua.LVAsString(v.RawGetString("title"))
	case *lua.LNilType:
	default:
		return Track{}, fmt.Errorf("%s: %s must return a string or a table, got %s", l.name, constant.SelectTrackFn, ret.Type())
	}

	if track.URI == "" {
		return Track{}, fmt.Errorf("%w from %s", ErrNoTrack, l.name)
	}
	return track, nil
}

func (l *Lua) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Close()
}
