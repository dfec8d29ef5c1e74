package constant

// Addon Function Identifiers - these constants define the required global function signatures for Lua stream addons.
const (
	AddonStreamsFn = "Streams"
)

// AddonTemplate is a Go text/template for scaffolding new Lua stream addons.
const AddonTemplate = `{{ $divider := repeat "-" (plus (max (len .URL) (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @url     {{ .URL }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


---@alias stream { title: string, name: string|nil, url: string|nil, infoHash: string|nil }


----- IMPORTS -----
--- END IMPORTS ---



----- MAIN -----

--- Resolves stream candidates for a title.
-- @param kind string Either "movie" or "series"
-- @param id string IMDb id, "tt123:season:episode" for series
-- @return stream[] Table of streams
function {{ .StreamsFn }}(kind, id)
	return {}
end

--- END MAIN ---

-- ex: ts=4 sw=4 et filetype=lua
`
