// Package docx reads and rewrites DOCX (Office Open XML) packages for
// placeholder substitution.
//
// A DOCX file is a ZIP archive of XML parts. This package parses the
// text-bearing parts (word/document.xml plus every header and footer
// part) into an ordered tree of paragraphs and tables, down to the
// individual formatting run. Run text can be rewritten in place;
// everything else round-trips byte for byte.
//
// Serialization deliberately avoids re-marshaling the XML. encoding/xml
// cannot reproduce WordprocessingML namespace prefixes faithfully, so
// edited text is spliced back into the original part bytes at the
// recorded offsets of each <w:t> node. Formatting, run boundaries, and
// every untouched archive entry survive unchanged.
package docx
