// Package constant defines immutable application-level identifiers.
package constant

// SelectTrackFn is the global function every Lua selector script must define.
const SelectTrackFn = "SelectTrack"

// SelectorTemplate is a Go text/template for scaffolding new Lua selector scripts.
const SelectorTemplate = `{{ $divider := repeat "-" (plus (max (len .URL) (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @url     {{ .URL }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


---@alias track { uri: string, title: string|nil }


----- IMPORTS -----
--- END IMPORTS ---



----- MAIN -----

--- Picks a track for the given vibe.
-- @param vibe string What the listener asked for
-- @return track Track to play
function {{ .SelectTrackFn }}(vibe)
	return { uri = "", title = "" }
end

--- END MAIN ---

-- ex: ts=4 sw=4 et filetype=lua
`
