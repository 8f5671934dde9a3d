// Package filing builds the XML documents submitted to the Czech tax
// portal: the VAT control statement (DPHKH1), the VAT return (DPHDP3)
// and the EC sales list (DPHSHV).
//
// All three share the EPO envelope: a Pisemnost root holding one
// filing element, which opens with a VetaD document header and a VetaP
// filer identification. Documents are assembled as etree element
// trees and serialized once at the end; attribute order inside each
// element is fixed by the portal schema and follows insertion order.
package filing

import (
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/rezonia/filing-engine/internal/model"
)

// SoftwareName and SoftwareVersion identify the issuing system in the
// Pisemnost envelope.
const (
	SoftwareName    = "filing-engine"
	SoftwareVersion = "1.0.0"
)

// Result is a finished filing: the serialized document plus any
// row-level warnings collected while classifying its inputs.
type Result struct {
	XML      string
	Warnings []string
}

func newPisemnost(filingElement string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	pis := doc.CreateElement("Pisemnost")
	pis.CreateAttr("nazevSW", SoftwareName)
	pis.CreateAttr("verzeSW", SoftwareVersion)
	return doc, pis.CreateElement(filingElement)
}

// vetaD writes the document header. The portal expresses the period
// as a mesic attribute XOR a ctvrt attribute; the Period type
// guarantees exactly one is present.
func vetaD(parent *etree.Element, dokument string, period model.Period, now time.Time) {
	d := parent.CreateElement("VetaD")
	d.CreateAttr("k_uladis", "DPH")
	d.CreateAttr("dokument", dokument)
	if m, ok := period.Month(); ok {
		d.CreateAttr("mesic", itoa(m))
	}
	if q, ok := period.Quarter(); ok {
		d.CreateAttr("ctvrt", itoa(q))
	}
	d.CreateAttr("rok", itoa(period.Year()))
	d.CreateAttr("d_poddp", model.FormatDate(now))
}

func vetaP(parent *etree.Element, s model.Submitter) {
	p := parent.CreateElement("VetaP")
	p.CreateAttr("dic", stripDomesticPrefix(s.TaxID))
	p.CreateAttr("typ_ds", "F")
	p.CreateAttr("prijmeni", s.LastName)
	p.CreateAttr("jmeno", s.FirstName)
	p.CreateAttr("naz_obce", s.City)
	p.CreateAttr("ulice", s.Street)
	p.CreateAttr("psc", s.ZIP)
	p.CreateAttr("stat", s.Country)
	if s.Email != "" {
		p.CreateAttr("email", s.Email)
	}
}

// stripDomesticPrefix drops a leading two-letter country code; dic
// attributes carry the bare tax number.
func stripDomesticPrefix(id string) string {
	if len(id) > 2 && isUpper(id[0]) && isUpper(id[1]) {
		return id[2:]
	}
	return id
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

func itoa(n int) string { return strconv.Itoa(n) }

func serialize(doc *etree.Document) (string, error) {
	doc.Indent(2)
	return doc.WriteToString()
}
