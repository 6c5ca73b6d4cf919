package epub

import (
	"archive/zip"
	"encoding/xml"
)

const (
	encryptionPath = "META-INF/encryption.xml"
	// sinfPath only exists in Apple FairPlay packages.
	sinfPath = "META-INF/sinf.xml"
)

// Font obfuscation only mangles embedded fonts; text stays readable.
var obfuscationAlgorithms = map[string]bool{
	"http://www.idpf.org/2008/embedding": true,
	"http://ns.adobe.com/pdf/enc#RC":     true,
}

type encryptionXML struct {
	XMLName       xml.Name `xml:"encryption"`
	EncryptedData []struct {
		Method struct {
			Algorithm string `xml:"Algorithm,attr"`
		} `xml:"EncryptionMethod"`
	} `xml:"EncryptedData"`
}

// checkDRM inspects the META-INF encryption descriptors.
// It returns ErrDRMProtected for any encryption other than font
// obfuscation, and reports whether obfuscated fonts were seen.
// An encryption.xml that cannot be parsed is treated as DRM.
func checkDRM(zr *zip.Reader) (obfuscated bool, err error) {
	if findFileInsensitive(zr, sinfPath) != nil {
		return false, ErrDRMProtected
	}
	f := findFileInsensitive(zr, encryptionPath)
	if f == nil {
		return false, nil
	}
	data, err := readZipFile(f)
	if err != nil {
		return false, err
	}

	var enc encryptionXML
	if err := xml.Unmarshal(stripBOM(data), &enc); err != nil {
		return false, ErrDRMProtected
	}
	for _, ed := range enc.EncryptedData {
		if !obfuscationAlgorithms[ed.Method.Algorithm] {
			return false, ErrDRMProtected
		}
		obfuscated = true
	}
	return obfuscated, nil
}
