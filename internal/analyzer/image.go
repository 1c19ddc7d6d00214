package analyzer

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/sozercan/prodsight/internal/llm"
)

// decodeImage accepts raw base64 or a data URL. An explicit mimeType wins
// over the data URL header, which wins over content sniffing.
func decodeImage(field, encoded, mimeType string) (*llm.Image, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, nil
	}

	if rest, ok := strings.CutPrefix(encoded, "data:"); ok {
		header, payload, found := strings.Cut(rest, ",")
		if !found {
			return nil, &ValidationError{Field: field, Message: "malformed data URL"}
		}
		if mimeType == "" {
			mimeType, _, _ = strings.Cut(header, ";")
		}
		encoded = payload
	}

	data, err := decodeBase64(encoded)
	if err != nil {
		return nil, &ValidationError{Field: field, Message: "invalid base64 image"}
	}
	if len(data) == 0 {
		return nil, &ValidationError{Field: field, Message: "empty image"}
	}

	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return &llm.Image{Data: data, MIMEType: mimeType}, nil
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}
