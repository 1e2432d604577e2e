package zxml

import "regexp"

var versionPattern = regexp.MustCompile(`^1\.[0-9]+$`)
var encodingPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._-]*$`)

// xmlDeclResult holds the parsed fields of an XmlDecl (spec.md §4.4).
type xmlDeclResult struct {
	Version       string
	Encoding      string
	HasEncoding   bool
	Standalone    bool
	HasStandalone bool
}

// recognizeXMLDecl recognizes the XmlDecl production, assuming the cursor
// is positioned just past the opening "<?xml".
//
// XmlDecl ::= '<?xml' S 'version' Eq ('1.x'|"1.x") (S EncodingDecl)?
//
//	(S SDDecl)? S? '?>'
func recognizeXMLDecl(c Cursor) (xmlDeclResult, Cursor, error) {
	var out xmlDeclResult

	c, err := recognizeS(c)
	if err != nil {
		return out, c, err
	}
	c, err = expectLiteral(c, "version")
	if err != nil {
		return out, c, err
	}
	c, err = recognizeEq(c)
	if err != nil {
		return out, c, err
	}
	versionOffset := c.Offset()
	version, c, err := recognizeQuoted(c)
	if err != nil {
		return out, c, err
	}
	if !versionPattern.MatchString(version) {
		return out, c, errAt(KindUnsupportedVersion, versionOffset, version)
	}
	out.Version = version

	// Optional EncodingDecl.
	probe := skipOptionalS(c)
	if probe.HasPrefix("encoding") {
		c = probe
		c, err = expectLiteral(c, "encoding")
		if err != nil {
			return out, c, err
		}
		c, err = recognizeEq(c)
		if err != nil {
			return out, c, err
		}
		encOffset := c.Offset()
		enc, c2, err := recognizeQuoted(c)
		if err != nil {
			return out, c2, err
		}
		if !encodingPattern.MatchString(enc) {
			return out, c2, errAt(KindIllegalName, encOffset, enc)
		}
		out.Encoding = enc
		out.HasEncoding = true
		c = c2
	}

	// Optional SDDecl.
	probe = skipOptionalS(c)
	if probe.HasPrefix("standalone") {
		c = probe
		c, err = expectLiteral(c, "standalone")
		if err != nil {
			return out, c, err
		}
		c, err = recognizeEq(c)
		if err != nil {
			return out, c, err
		}
		sdOffset := c.Offset()
		sd, c2, err := recognizeQuoted(c)
		if err != nil {
			return out, c2, err
		}
		if sd != "yes" && sd != "no" {
			return out, c2, errAt(KindIllegalAttributeValue, sdOffset, sd)
		}
		out.Standalone = sd == "yes"
		out.HasStandalone = true
		c = c2
	}

	c = skipOptionalS(c)
	c, err = expectLiteral(c, "?>")
	if err != nil {
		return out, c, err
	}
	return out, c, nil
}
