// Package scraper compiles and installs Lua addon scripts.
package scraper

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/lumina-cli/lumina/filesystem"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

var bytecodeCache sync.Map

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// PreCompileAndLoad runs the script at scriptPath inside L.
// Compiled prototypes are reused while the file content stays the same.
func PreCompileAndLoad(L *lua.LState, scriptPath string) error {
	source, err := filesystem.API().ReadFile(scriptPath)
	if err != nil {
		return err
	}

	cacheKey := scriptPath + "@" + digest(source)
	proto, ok := bytecodeCache.Load(cacheKey)
	if !ok {
		chunk, err := parse.Parse(bytes.NewReader(source), scriptPath)
		if err != nil {
			return err
		}

		compiled, err := lua.Compile(chunk, scriptPath)
		if err != nil {
			return err
		}

		bytecodeCache.Store(cacheKey, compiled)
		proto = compiled
	}

	L.Push(L.NewFunctionFromProto(proto.(*lua.FunctionProto)))
	return L.PCall(0, lua.MultRet, nil)
}
