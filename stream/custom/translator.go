package custom

import (
	"fmt"

	"github.com/lumina-cli/lumina/stream"
	lua "github.com/yuin/gopher-lua"
)

func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return val.String()
	}
	return ""
}

// streamFromTable reads {title, name, url, infoHash, fileIdx}. Either url or infoHash must be set.
func streamFromTable(table *lua.LTable, origin string) (stream.Stream, error) {
	s := stream.Stream{
		Title:    getString(table, "title"),
		Name:     getString(table, "name"),
		URL:      getString(table, "url"),
		InfoHash: getString(table, "infoHash"),
		Origin:   origin,
	}

	if s.URL == "" && s.InfoHash == "" {
		return stream.Stream{}, fmt.Errorf("stream must have url or infoHash")
	}

	if s.Title == "" {
		s.Title = s.Name
	}

	if idx, ok := table.RawGetString("fileIdx").(lua.LNumber); ok {
		i := int(idx)
		s.FileIdx = &i
	}

	return s, nil
}
