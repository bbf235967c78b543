package mdast

import "github.com/yaklabco/gomdparse/pkg/langdetect"

// DetectLanguages sets the language of fenced code without one when it can
// be guessed from the code, and returns how many were set.
func DetectLanguages(root *Node) int {
	detected := 0
	for _, n := range FindByKind(root, NodeCode) {
		code := n.Block.Code
		if !code.Fenced || code.Lang != "" {
			continue
		}
		if lang, ok := langdetect.Detect([]byte(n.Value)); ok {
			code.Lang = lang
			code.Detected = true
			detected++
		}
	}
	return detected
}
