package langdetect

import (
	"testing"
)

func benchmarkDetect(b *testing.B, code string) {
	b.Helper()
	content := []byte(code)
	b.ResetTimer()
	for range b.N {
		Detect(content)
	}
}

func BenchmarkDetectGo(b *testing.B) {
	benchmarkDetect(b, "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"Hello, World!\")\n}")
}

func BenchmarkDetectYAML(b *testing.B) {
	benchmarkDetect(b, "name: test\nversion: 1.0.0\ndependencies:\n  - a\n  - b\n")
}

func BenchmarkDetectUnknown(b *testing.B) {
	benchmarkDetect(b, "hello")
}
