/*
Package server implements msgpack IPC for the WordCoach suggestion engine.

The server reads a stream of msgpack encoded requests from stdin and writes
msgpack encoded responses to stdout. Logs go to stderr so they never mix
with the stream.

# IPC

Every request carries an ID and an op. Suggestion requests look like this:

	{"id": "req_001", "op": "suggest", "text": "I like apples, ", "caret": 15, "level": "beginner", "c": 8}

The caret is a rune offset into text; when it is omitted the caret sits at
the end. Without "c" the cap comes from config: word_bank_cap when "flow" is
"wordbank", workspace_cap otherwise. Caps above max_cap are lowered to it.
The server answers at once with the local list:

	{"id": "req_001", "s": [{"w": "pears", "r": 1}, {"w": "and", "r": 2}], "c": 2, "label": "listInProgress", "final": false, "tok": 7, "t": 85}

When the word service is enabled and the caret gives something to look up,
a second response with the same id and "final": true follows once the
service answers, unless a newer suggest request has arrived since. Only the
latest request ever gets its second response.

Other ops:

	{"id": "a1", "op": "assess", "text": "the dog ran."}
	{"id": "w1", "op": "wordbank", "level": "intermediate"}
	{"id": "c1", "op": "config", "workspace_cap": 8, "default_level": "advanced"}
	{"id": "h1", "op": "health"}

assess lists every writing objective with whether the text meets it.
wordbank returns the categories a writer at the level sees. config changes
engine settings at runtime and saves them when a config file is in use.

Failures are reported as {"id", "e", "c"} with an HTTP style code.
*/
package server

// Request is the single request shape for every op.
type Request struct {
	ID    string `msgpack:"id"`
	Op    string `msgpack:"op"`
	Text  string `msgpack:"text,omitempty"`
	Caret *int   `msgpack:"caret,omitempty"`
	Level string `msgpack:"level,omitempty"`
	Cap   int    `msgpack:"c,omitempty"`
	// Flow picks the default cap: "wordbank" or "workspace".
	Flow string `msgpack:"flow,omitempty"`

	// config op only
	WordBankCap   *int    `msgpack:"word_bank_cap,omitempty"`
	WorkspaceCap  *int    `msgpack:"workspace_cap,omitempty"`
	DefaultLevel  *string `msgpack:"default_level,omitempty"`
	RemoteEnabled *bool   `msgpack:"remote_enabled,omitempty"`
}

// Suggestion - minimal suggestion entry
type Suggestion struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// SuggestResponse - suggestion list for a suggest request
type SuggestResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	Label       string       `msgpack:"label"`
	List        bool         `msgpack:"list,omitempty"`
	Final       bool         `msgpack:"final"`
	Token       uint64       `msgpack:"tok"`
	TimeTaken   int64        `msgpack:"t"`
}

// ObjectiveStatus is one objective of an assessment.
type ObjectiveStatus struct {
	ID    string `msgpack:"id"`
	Label string `msgpack:"label"`
	Stage string `msgpack:"stage"`
	Met   bool   `msgpack:"met"`
	Tip   string `msgpack:"tip,omitempty"`
}

// AssessResponse - assessment of a text
type AssessResponse struct {
	ID         string            `msgpack:"id"`
	Objectives []ObjectiveStatus `msgpack:"o"`
	Met        int               `msgpack:"met"`
	Total      int               `msgpack:"total"`
	Score      float64           `msgpack:"score"`
	TimeTaken  int64             `msgpack:"t"`
}

// WordBankEntry - one entry of a word bank category
type WordBankEntry struct {
	Text string `msgpack:"w"`
	Hint string `msgpack:"h,omitempty"`
}

// WordBankCategory - a coloured group of entries
type WordBankCategory struct {
	ID      string          `msgpack:"id"`
	Label   string          `msgpack:"label"`
	Color   string          `msgpack:"color"`
	Entries []WordBankEntry `msgpack:"e"`
}

// WordBankResponse - categories visible at a level
type WordBankResponse struct {
	ID         string             `msgpack:"id"`
	Level      string             `msgpack:"level"`
	Categories []WordBankCategory `msgpack:"categories"`
}

// ConfigResponse - config operation response
type ConfigResponse struct {
	ID           string `msgpack:"id"`
	Status       string `msgpack:"status"`
	WordBankCap  int    `msgpack:"word_bank_cap"`
	WorkspaceCap int    `msgpack:"workspace_cap"`
	DefaultLevel string `msgpack:"default_level"`
	Remote       bool   `msgpack:"remote_enabled"`
}

// StatusResponse - health and ready notices
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for any request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
