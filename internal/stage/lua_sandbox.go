package stage

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

const defaultLuaTimeout = 2 * time.Second

const luaChunkName = "format.lua"

// luaFormatter evaluates a compiled chunk once per line in a state that only
// exposes the base, string, table and math libraries.
type luaFormatter struct {
	proto   *lua.FunctionProto
	L       *lua.LState
	timeout time.Duration
}

func newLuaFormatter(code string, timeout time.Duration) (*luaFormatter, error) {
	proto, err := compileLua(wrapExpression(code))
	if err != nil {
		return nil, err
	}
	return &luaFormatter{
		proto:   proto,
		L:       newSandboxLuaState(code),
		timeout: timeout,
	}, nil
}

// wrapExpression turns a bare expression into a chunk returning it.
func wrapExpression(code string) string {
	if containsReturn(code) {
		return code
	}
	return "return (" + code + ")"
}

func containsReturn(code string) bool {
	for _, f := range strings.FieldsFunc(code, func(r rune) bool {
		return !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) {
		if f == "return" {
			return true
		}
	}
	return false
}

func compileLua(code string) (*lua.FunctionProto, error) {
	chunk, err := parse.Parse(strings.NewReader(code), luaChunkName)
	if err != nil {
		return nil, err
	}
	return lua.Compile(chunk, luaChunkName)
}

func newSandboxLuaState(code string) *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs:     true,
		RegistrySize:     256,
		RegistryMaxSize:  4096,
		RegistryGrowStep: 0,
	})
	openLib := func(name string, f lua.LGFunction) {
		L.Push(L.NewFunction(f))
		L.Push(lua.LString(name))
		L.Call(1, 0)
	}
	openLib(lua.BaseLibName, lua.OpenBase)
	// The base library can reach the filesystem through these.
	for _, name := range []string{"dofile", "loadfile"} {
		L.SetGlobal(name, lua.LNil)
	}
	openLib(lua.StringLibName, lua.OpenString)
	openLib(lua.TabLibName, lua.OpenTable)
	openLib(lua.MathLibName, lua.OpenMath)
	installDeterministicRandom(L, deterministicSeed(code))
	return L
}

func deterministicSeed(code string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(luaChunkName))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(code))
	return int64(h.Sum64() & 0x7fffffffffffffff)
}

// installDeterministicRandom replaces math.random so identical input renders
// identical output.
func installDeterministicRandom(L *lua.LState, seed int64) {
	mathTbl, ok := L.GetGlobal("math").(*lua.LTable)
	if !ok || mathTbl == nil {
		return
	}
	rng := rand.New(rand.NewSource(seed))
	mathTbl.RawSetString("random", L.NewFunction(func(L *lua.LState) int {
		var lo, hi int
		switch L.GetTop() {
		case 0:
			L.Push(lua.LNumber(rng.Float64()))
			return 1
		case 1:
			lo, hi = 1, L.CheckInt(1)
		default:
			lo, hi = L.CheckInt(1), L.CheckInt(2)
		}
		if hi < lo {
			L.ArgError(L.GetTop(), "interval is empty")
			return 0
		}
		L.Push(lua.LNumber(lo + rng.Intn(hi-lo+1)))
		return 1
	}))
	// Seeding is fixed per chunk.
	mathTbl.RawSetString("randomseed", L.NewFunction(func(*lua.LState) int { return 0 }))
}

func (f *luaFormatter) Format(index int, greeting, name string) (string, error) {
	if f.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
		defer cancel()
		f.L.SetContext(ctx)
		defer f.L.RemoveContext()
	}
	f.L.SetGlobal("greeting", lua.LString(greeting))
	f.L.SetGlobal("name", lua.LString(name))
	f.L.SetGlobal("index", lua.LNumber(index))

	f.L.Push(f.L.NewFunctionFromProto(f.proto))
	if err := f.L.PCall(0, 1, nil); err != nil {
		if isTimeoutError(err) {
			return "", fmt.Errorf("sandbox timeout")
		}
		return "", err
	}
	ret := f.L.Get(-1)
	f.L.Pop(1)
	s, ok := ret.(lua.LString)
	if !ok {
		return "", fmt.Errorf("expected a string result, got %s", ret.Type())
	}
	return string(s), nil
}

func (f *luaFormatter) Close() {
	if f.L != nil {
		f.L.Close()
		f.L = nil
	}
}

func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadline") || strings.Contains(msg, "context canceled")
}
