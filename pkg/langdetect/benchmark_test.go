package langdetect_test

import (
	"testing"

	"github.com/yaklabco/oakwood/pkg/lang"
	"github.com/yaklabco/oakwood/pkg/lang/json"
	"github.com/yaklabco/oakwood/pkg/lang/mini"
	"github.com/yaklabco/oakwood/pkg/langdetect"
)

func BenchmarkDetect(b *testing.B) {
	inputs := []struct {
		name    string
		content string
	}{
		{"mini", "fn greet(name) {\n\treturn \"hello {name}\";\n}\nlet mut count = 0;\n"},
		{"json", "{\n  \"name\": \"oakwood\",\n  \"tags\": [\"parser\", \"incremental\"]\n}\n"},
		{"shebang", "#!/bin/sh\necho hi\n"},
		{"empty", ""},
	}

	for _, in := range inputs {
		content := []byte(in.content)
		b.Run(in.name, func(b *testing.B) {
			for b.Loop() {
				langdetect.Detect(content)
			}
		})
	}
}

func BenchmarkDetector_ForFile(b *testing.B) {
	detector := langdetect.New(lang.NewRegistry(mini.New(), json.New()))
	content := []byte("let x = 1;\n")

	b.Run("extension", func(b *testing.B) {
		for b.Loop() {
			_, _ = detector.ForFile("src/main.mn", content)
		}
	})

	b.Run("content", func(b *testing.B) {
		for b.Loop() {
			_, _ = detector.ForFile("scratch", []byte("{\"a\": 1}"))
		}
	})
}
