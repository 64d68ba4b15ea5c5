package mistral

import (
	"encoding/json"
	"fmt"
)

const (
	ChunkText     = "text"
	ChunkToolFile = "tool_file"
)

// Chunk is one typed piece of an entry's content.
type Chunk interface {
	Kind() string
}

type TextChunk struct {
	Text string
}

func (TextChunk) Kind() string { return ChunkText }

type ToolFileChunk struct {
	Tool     string
	FileID   string
	FileName string
	FileType string
}

func (ToolFileChunk) Kind() string { return ChunkToolFile }

// UnknownChunk keeps chunk types this client does not model.
type UnknownChunk struct {
	Type string
	Raw  json.RawMessage
}

func (u UnknownChunk) Kind() string { return u.Type }

// Entry is one output of a conversation, e.g. "message.output" or
// "tool.execution".
type Entry struct {
	Type    string
	Content []Chunk
}

type ConversationResponse struct {
	ConversationID string  `json:"conversation_id"`
	Outputs        []Entry `json:"outputs"`
}

// FirstToolFile returns the first tool_file chunk, scanning outputs and
// their chunks in order.
func (r ConversationResponse) FirstToolFile() (ToolFileChunk, bool) {
	for _, entry := range r.Outputs {
		for _, chunk := range entry.Content {
			if file, ok := chunk.(ToolFileChunk); ok {
				return file, true
			}
		}
	}
	return ToolFileChunk{}, false
}

type rawEntry struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

type rawChunk struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	Tool     string `json:"tool"`
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
}

// UnmarshalJSON accepts content either as a plain string or as a list of
// typed chunks.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Type = raw.Type
	e.Content = nil

	if len(raw.Content) == 0 || string(raw.Content) == "null" {
		return nil
	}

	var text string
	if err := json.Unmarshal(raw.Content, &text); err == nil {
		e.Content = []Chunk{TextChunk{Text: text}}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw.Content, &items); err != nil {
		return fmt.Errorf("unexpected content of %s entry: %w", raw.Type, err)
	}
	e.Content = make([]Chunk, 0, len(items))
	for _, item := range items {
		chunk, err := parseChunk(item)
		if err != nil {
			return err
		}
		e.Content = append(e.Content, chunk)
	}
	return nil
}

func parseChunk(data json.RawMessage) (Chunk, error) {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		return TextChunk{Text: text}, nil
	}

	var raw rawChunk
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse chunk: %w", err)
	}
	switch raw.Type {
	case ChunkText:
		return TextChunk{Text: raw.Text}, nil
	case ChunkToolFile:
		return ToolFileChunk{
			Tool:     raw.Tool,
			FileID:   raw.FileID,
			FileName: raw.FileName,
			FileType: raw.FileType,
		}, nil
	default:
		return UnknownChunk{Type: raw.Type, Raw: data}, nil
	}
}
