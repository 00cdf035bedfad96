package packet

import "encoding/json"

// Parse normalizes a raw transport record into one variant of the packet
// union. Parse never fails: records that are not valid JSON objects, carry an
// unrecognized type discriminator, or miss a required correlating field
// decode to Unknown so that folding a packet log can never halt on bad input.
func Parse(raw json.RawMessage) Packet {
	var env struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return Unknown{Raw: raw}
	}
	switch env.Type {
	case TypeTextChunk:
		var p TextChunk
		if err := json.Unmarshal(raw, &p); err != nil {
			return unknown(raw, env.Type)
		}
		return p
	case TypeThinkingChunk:
		var p ThinkingChunk
		if err := json.Unmarshal(raw, &p); err != nil {
			return unknown(raw, env.Type)
		}
		return p
	case TypeToolCallStart:
		var p ToolCallStart
		if err := json.Unmarshal(raw, &p); err != nil || p.ToolCallID == "" {
			return unknown(raw, env.Type)
		}
		return p
	case TypeToolCallProgress:
		var p ToolCallProgress
		if err := json.Unmarshal(raw, &p); err != nil || p.ToolCallID == "" {
			return unknown(raw, env.Type)
		}
		return p
	case TypeSubagentPacket:
		var p SubagentPacket
		if err := json.Unmarshal(raw, &p); err != nil {
			return unknown(raw, env.Type)
		}
		return p
	case TypePromptResponse:
		var p PromptResponse
		if err := json.Unmarshal(raw, &p); err != nil {
			return unknown(raw, env.Type)
		}
		return p
	case TypeArtifactCreated:
		var p ArtifactCreated
		if err := json.Unmarshal(raw, &p); err != nil || p.Artifact.ID == "" {
			return unknown(raw, env.Type)
		}
		return p
	case TypeError:
		var p Error
		if err := json.Unmarshal(raw, &p); err != nil {
			return unknown(raw, env.Type)
		}
		return p
	case TypeSectionEnd:
		return SectionEnd{}
	default:
		return unknown(raw, env.Type)
	}
}

// ParseAll parses every record of a packet log in order. The result has the
// same length as raws; undecodable records occupy their position as Unknown.
func ParseAll(raws []json.RawMessage) []Packet {
	if len(raws) == 0 {
		return nil
	}
	out := make([]Packet, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Parse(raw))
	}
	return out
}

func unknown(raw json.RawMessage, declared Type) Unknown {
	return Unknown{DeclaredType: string(declared), Raw: raw}
}
