package event

import "strconv"

// TokenKind identifies the kind of token an event opens or closes.
type TokenKind uint16

// Token kinds. The list is closed per release but consumers should ignore
// names they do not know.
const (
	TokData TokenKind = iota
	TokAttentionSequence
	TokAutolink
	TokAutolinkEmail
	TokAutolinkMarker
	TokAutolinkProtocol
	TokBlankLineEnding
	TokBlockQuote
	TokBlockQuoteMarker
	TokBlockQuotePrefix
	TokByteOrderMark
	TokCharacterEscape
	TokCharacterEscapeMarker
	TokCharacterEscapeValue
	TokCharacterReference
	TokCharacterReferenceMarker
	TokCharacterReferenceMarkerHexadecimal
	TokCharacterReferenceMarkerNumeric
	TokCharacterReferenceMarkerSemi
	TokCharacterReferenceValue
	TokCodeFenced
	TokCodeFencedFence
	TokCodeFencedFenceInfo
	TokCodeFencedFenceMeta
	TokCodeFencedFenceSequence
	TokCodeFlowChunk
	TokCodeIndented
	TokCodeText
	TokCodeTextData
	TokCodeTextSequence
	TokContent
	TokDefinition
	TokDefinitionDestination
	TokDefinitionDestinationLiteral
	TokDefinitionDestinationLiteralMarker
	TokDefinitionDestinationRaw
	TokDefinitionDestinationString
	TokDefinitionLabel
	TokDefinitionLabelMarker
	TokDefinitionLabelString
	TokDefinitionMarker
	TokDefinitionTitle
	TokDefinitionTitleMarker
	TokDefinitionTitleString
	TokEmphasis
	TokEmphasisSequence
	TokEmphasisText
	TokFrontmatter
	TokFrontmatterChunk
	TokFrontmatterFence
	TokFrontmatterSequence
	TokGFMAutolinkLiteralEmail
	TokGFMAutolinkLiteralMailto
	TokGFMAutolinkLiteralProtocol
	TokGFMAutolinkLiteralWww
	TokGFMAutolinkLiteralXmpp
	TokGFMFootnoteCall
	TokGFMFootnoteCallLabel
	TokGFMFootnoteCallMarker
	TokGFMFootnoteDefinition
	TokGFMFootnoteDefinitionLabel
	TokGFMFootnoteDefinitionLabelMarker
	TokGFMFootnoteDefinitionLabelString
	TokGFMFootnoteDefinitionMarker
	TokGFMFootnoteDefinitionPrefix
	TokGFMStrikethrough
	TokGFMStrikethroughSequence
	TokGFMStrikethroughText
	TokGFMTaskListItemCheck
	TokGFMTaskListItemMarker
	TokGFMTaskListItemValueChecked
	TokGFMTaskListItemValueUnchecked
	TokHardBreakEscape
	TokHardBreakTrailing
	TokHeadingATX
	TokHeadingATXSequence
	TokHeadingATXText
	TokHeadingSetext
	TokHeadingSetextText
	TokHeadingSetextUnderline
	TokHeadingSetextUnderlineSequence
	TokHTMLFlow
	TokHTMLFlowData
	TokHTMLText
	TokHTMLTextData
	TokImage
	TokLabel
	TokLabelEnd
	TokLabelImage
	TokLabelImageMarker
	TokLabelLink
	TokLabelMarker
	TokLabelText
	TokLineEnding
	TokLink
	TokListItem
	TokListItemMarker
	TokListItemPrefix
	TokListItemValue
	TokListOrdered
	TokListUnordered
	TokMathFlow
	TokMathFlowChunk
	TokMathFlowFence
	TokMathFlowFenceMeta
	TokMathFlowFenceSequence
	TokMathText
	TokMathTextData
	TokMathTextSequence
	TokMDXExpressionData
	TokMDXFlowExpression
	TokMDXFlowExpressionMarker
	TokMDXTextExpression
	TokMDXTextExpressionMarker
	TokParagraph
	TokReference
	TokReferenceMarker
	TokReferenceString
	TokResource
	TokResourceDestination
	TokResourceDestinationLiteral
	TokResourceDestinationLiteralMarker
	TokResourceDestinationRaw
	TokResourceDestinationString
	TokResourceMarker
	TokResourceTitle
	TokResourceTitleMarker
	TokResourceTitleString
	TokSpaceOrTab
	TokStrong
	TokStrongSequence
	TokStrongText
	TokThematicBreak
	TokThematicBreakSequence

	tokenKindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var tokenNames = [tokenKindCount]string{
	TokData:                                "Data",
	TokAttentionSequence:                   "AttentionSequence",
	TokAutolink:                            "Autolink",
	TokAutolinkEmail:                       "AutolinkEmail",
	TokAutolinkMarker:                      "AutolinkMarker",
	TokAutolinkProtocol:                    "AutolinkProtocol",
	TokBlankLineEnding:                     "BlankLineEnding",
	TokBlockQuote:                          "BlockQuote",
	TokBlockQuoteMarker:                    "BlockQuoteMarker",
	TokBlockQuotePrefix:                    "BlockQuotePrefix",
	TokByteOrderMark:                       "ByteOrderMark",
	TokCharacterEscape:                     "CharacterEscape",
	TokCharacterEscapeMarker:               "CharacterEscapeMarker",
	TokCharacterEscapeValue:                "CharacterEscapeValue",
	TokCharacterReference:                  "CharacterReference",
	TokCharacterReferenceMarker:            "CharacterReferenceMarker",
	TokCharacterReferenceMarkerHexadecimal: "CharacterReferenceMarkerHexadecimal",
	TokCharacterReferenceMarkerNumeric:     "CharacterReferenceMarkerNumeric",
	TokCharacterReferenceMarkerSemi:        "CharacterReferenceMarkerSemi",
	TokCharacterReferenceValue:             "CharacterReferenceValue",
	TokCodeFenced:                          "CodeFenced",
	TokCodeFencedFence:                     "CodeFencedFence",
	TokCodeFencedFenceInfo:                 "CodeFencedFenceInfo",
	TokCodeFencedFenceMeta:                 "CodeFencedFenceMeta",
	TokCodeFencedFenceSequence:             "CodeFencedFenceSequence",
	TokCodeFlowChunk:                       "CodeFlowChunk",
	TokCodeIndented:                        "CodeIndented",
	TokCodeText:                            "CodeText",
	TokCodeTextData:                        "CodeTextData",
	TokCodeTextSequence:                    "CodeTextSequence",
	TokContent:                             "Content",
	TokDefinition:                          "Definition",
	TokDefinitionDestination:               "DefinitionDestination",
	TokDefinitionDestinationLiteral:        "DefinitionDestinationLiteral",
	TokDefinitionDestinationLiteralMarker:  "DefinitionDestinationLiteralMarker",
	TokDefinitionDestinationRaw:            "DefinitionDestinationRaw",
	TokDefinitionDestinationString:         "DefinitionDestinationString",
	TokDefinitionLabel:                     "DefinitionLabel",
	TokDefinitionLabelMarker:               "DefinitionLabelMarker",
	TokDefinitionLabelString:               "DefinitionLabelString",
	TokDefinitionMarker:                    "DefinitionMarker",
	TokDefinitionTitle:                     "DefinitionTitle",
	TokDefinitionTitleMarker:               "DefinitionTitleMarker",
	TokDefinitionTitleString:               "DefinitionTitleString",
	TokEmphasis:                            "Emphasis",
	TokEmphasisSequence:                    "EmphasisSequence",
	TokEmphasisText:                        "EmphasisText",
	TokFrontmatter:                         "Frontmatter",
	TokFrontmatterChunk:                    "FrontmatterChunk",
	TokFrontmatterFence:                    "FrontmatterFence",
	TokFrontmatterSequence:                 "FrontmatterSequence",
	TokGFMAutolinkLiteralEmail:             "GFMAutolinkLiteralEmail",
	TokGFMAutolinkLiteralMailto:            "GFMAutolinkLiteralMailto",
	TokGFMAutolinkLiteralProtocol:          "GFMAutolinkLiteralProtocol",
	TokGFMAutolinkLiteralWww:               "GFMAutolinkLiteralWww",
	TokGFMAutolinkLiteralXmpp:              "GFMAutolinkLiteralXmpp",
	TokGFMFootnoteCall:                     "GFMFootnoteCall",
	TokGFMFootnoteCallLabel:                "GFMFootnoteCallLabel",
	TokGFMFootnoteCallMarker:               "GFMFootnoteCallMarker",
	TokGFMFootnoteDefinition:               "GFMFootnoteDefinition",
	TokGFMFootnoteDefinitionLabel:          "GFMFootnoteDefinitionLabel",
	TokGFMFootnoteDefinitionLabelMarker:    "GFMFootnoteDefinitionLabelMarker",
	TokGFMFootnoteDefinitionLabelString:    "GFMFootnoteDefinitionLabelString",
	TokGFMFootnoteDefinitionMarker:         "GFMFootnoteDefinitionMarker",
	TokGFMFootnoteDefinitionPrefix:         "GFMFootnoteDefinitionPrefix",
	TokGFMStrikethrough:                    "GFMStrikethrough",
	TokGFMStrikethroughSequence:            "GFMStrikethroughSequence",
	TokGFMStrikethroughText:                "GFMStrikethroughText",
	TokGFMTaskListItemCheck:                "GFMTaskListItemCheck",
	TokGFMTaskListItemMarker:               "GFMTaskListItemMarker",
	TokGFMTaskListItemValueChecked:         "GFMTaskListItemValueChecked",
	TokGFMTaskListItemValueUnchecked:       "GFMTaskListItemValueUnchecked",
	TokHardBreakEscape:                     "HardBreakEscape",
	TokHardBreakTrailing:                   "HardBreakTrailing",
	TokHeadingATX:                          "HeadingATX",
	TokHeadingATXSequence:                  "HeadingATXSequence",
	TokHeadingATXText:                      "HeadingATXText",
	TokHeadingSetext:                       "HeadingSetext",
	TokHeadingSetextText:                   "HeadingSetextText",
	TokHeadingSetextUnderline:              "HeadingSetextUnderline",
	TokHeadingSetextUnderlineSequence:      "HeadingSetextUnderlineSequence",
	TokHTMLFlow:                            "HTMLFlow",
	TokHTMLFlowData:                        "HTMLFlowData",
	TokHTMLText:                            "HTMLText",
	TokHTMLTextData:                        "HTMLTextData",
	TokImage:                               "Image",
	TokLabel:                               "Label",
	TokLabelEnd:                            "LabelEnd",
	TokLabelImage:                          "LabelImage",
	TokLabelImageMarker:                    "LabelImageMarker",
	TokLabelLink:                           "LabelLink",
	TokLabelMarker:                         "LabelMarker",
	TokLabelText:                           "LabelText",
	TokLineEnding:                          "LineEnding",
	TokLink:                                "Link",
	TokListItem:                            "ListItem",
	TokListItemMarker:                      "ListItemMarker",
	TokListItemPrefix:                      "ListItemPrefix",
	TokListItemValue:                       "ListItemValue",
	TokListOrdered:                         "ListOrdered",
	TokListUnordered:                       "ListUnordered",
	TokMathFlow:                            "MathFlow",
	TokMathFlowChunk:                       "MathFlowChunk",
	TokMathFlowFence:                       "MathFlowFence",
	TokMathFlowFenceMeta:                   "MathFlowFenceMeta",
	TokMathFlowFenceSequence:               "MathFlowFenceSequence",
	TokMathText:                            "MathText",
	TokMathTextData:                        "MathTextData",
	TokMathTextSequence:                    "MathTextSequence",
	TokMDXExpressionData:                   "MDXExpressionData",
	TokMDXFlowExpression:                   "MDXFlowExpression",
	TokMDXFlowExpressionMarker:             "MDXFlowExpressionMarker",
	TokMDXTextExpression:                   "MDXTextExpression",
	TokMDXTextExpressionMarker:             "MDXTextExpressionMarker",
	TokParagraph:                           "Paragraph",
	TokReference:                           "Reference",
	TokReferenceMarker:                     "ReferenceMarker",
	TokReferenceString:                     "ReferenceString",
	TokResource:                            "Resource",
	TokResourceDestination:                 "ResourceDestination",
	TokResourceDestinationLiteral:          "ResourceDestinationLiteral",
	TokResourceDestinationLiteralMarker:    "ResourceDestinationLiteralMarker",
	TokResourceDestinationRaw:              "ResourceDestinationRaw",
	TokResourceDestinationString:           "ResourceDestinationString",
	TokResourceMarker:                      "ResourceMarker",
	TokResourceTitle:                       "ResourceTitle",
	TokResourceTitleMarker:                 "ResourceTitleMarker",
	TokResourceTitleString:                 "ResourceTitleString",
	TokSpaceOrTab:                          "SpaceOrTab",
	TokStrong:                              "Strong",
	TokStrongSequence:                      "StrongSequence",
	TokStrongText:                          "StrongText",
	TokThematicBreak:                       "ThematicBreak",
	TokThematicBreakSequence:               "ThematicBreakSequence",
}

// String returns the token name, for example "Paragraph".
func (t TokenKind) String() string {
	if t < tokenKindCount {
		return tokenNames[t]
	}
	return "TokenKind(" + strconv.Itoa(int(t)) + ")"
}

// ParseTokenKind returns the kind whose String form is s.
func ParseTokenKind(s string) (TokenKind, bool) {
	for i, name := range tokenNames {
		if name == s {
			return TokenKind(i), true
		}
	}
	return 0, false
}

// MarshalText encodes the kind as its string form.
func (t TokenKind) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// MarshalText encodes the kind as "enter" or "exit".
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// MarshalText encodes the content type by name.
func (c Content) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
