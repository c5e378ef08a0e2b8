package rate

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"tcmbrates/internal/domain"
)

// Document mirrors the bank's today.xml:
//
//	<Tarih_Date Tarih="04.03.2024" Date="03/04/2024" Bulten_No="2024/45">
//	  <Currency CrossOrder="0" Kod="USD" CurrencyCode="USD">
//	    <Unit>1</Unit>
//	    <Isim>ABD DOLARI</Isim>
//	    <ForexBuying>31.9706</ForexBuying>
//	    ...
type Document struct {
	XMLName    xml.Name         `xml:"Tarih_Date"`
	Date       string           `xml:"Tarih,attr"`
	Currencies []CurrencyRecord `xml:"Currency"`
}

type CurrencyRecord struct {
	Code            string `xml:"CurrencyCode,attr"`
	Unit            string `xml:"Unit"`
	Name            string `xml:"Isim"`
	ForexBuying     string `xml:"ForexBuying"`
	ForexSelling    string `xml:"ForexSelling"`
	BanknoteBuying  string `xml:"BanknoteBuying"`
	BanknoteSelling string `xml:"BanknoteSelling"`
}

// ParseDocument decodes a raw today.xml body.
func ParseDocument(body []byte) (Document, error) {
	var doc Document
	dec := xml.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", domain.ErrMalformedSourceDocument, err)
	}
	return doc, nil
}
