package custom

import (
	"context"
	"fmt"
	"sync"

	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/stream"
	lua "github.com/yuin/gopher-lua"
)

// Addon is a loaded Lua script. Calls are serialised since a Lua state is single threaded.
type Addon struct {
	name  string
	state *lua.LState
	mu    sync.Mutex
}

func newAddon(name string, state *lua.LState) *Addon {
	return &Addon{name: name, state: state}
}

func (a *Addon) Name() string { return a.name }

func (a *Addon) ID() string { return IDfromName(a.name) }

// Close releases the Lua state.
func (a *Addon) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Close()
}

// Streams calls Streams(kind, id) and converts the returned table.
func (a *Addon) Streams(ctx context.Context, req stream.Request) ([]stream.Stream, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state.SetContext(ctx)
	defer a.state.RemoveContext()

	val, err := a.call(constant.AddonStreamsFn, lua.LTTable,
		lua.LString(req.Kind.StremioType()),
		lua.LString(req.ID()),
	)
	if err != nil {
		return nil, err
	}

	var (
		streams []stream.Stream
		errs    []error
	)

	val.(*lua.LTable).ForEach(func(k, v lua.LValue) {
		if k.Type() != lua.LTNumber || v.Type() != lua.LTTable {
			return
		}

		s, err := streamFromTable(v.(*lua.LTable), a.name)
		if err != nil {
			errs = append(errs, err)
			return
		}
		streams = append(streams, s)
	})

	if len(streams) == 0 && len(errs) > 0 {
		return nil, errs[0]
	}

	return streams, nil
}

func (a *Addon) call(fn string, retType lua.LValueType, args ...lua.LValue) (lua.LValue, error) {
	luaFn := a.state.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is not defined", fn)
	}

	err := a.state.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		return nil, err
	}

	retval := a.state.Get(-1)
	a.state.Pop(1)

	if retval.Type() != retType {
		return nil, fmt.Errorf("%s returned %s, expected %s", fn, retval.Type(), retType)
	}

	return retval, nil
}
