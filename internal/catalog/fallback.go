package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed home.json
var fallbackHomeJSON []byte

var (
	fallbackOnce sync.Once
	fallbackData rawHomeData
	fallbackErr  error
)

// fallbackHome parses the bundled home snapshot once and caches the result.
func fallbackHome() (rawHomeData, error) {
	fallbackOnce.Do(func() {
		var envelope homeEnvelope
		if err := json.Unmarshal(fallbackHomeJSON, &envelope); err != nil {
			fallbackErr = fmt.Errorf("catalog: bundled home snapshot corrupt: %w", err)
			return
		}
		if envelope.Data == nil {
			fallbackErr = fmt.Errorf("catalog: bundled home snapshot missing data")
			return
		}
		fallbackData = *envelope.Data
	})
	return fallbackData, fallbackErr
}
