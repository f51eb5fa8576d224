package masslobby

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// stable element ids rendered by the disclosure site. these have been
// constant across filing years even as table layouts changed.
const (
	idDisclosureHeader = "ContentPlaceHolder1_lblDisclosureHeader"
	idYear             = "ContentPlaceHolder1_lblYear"

	idLobbyistCompany   = "ContentPlaceHolder1_LRegistrationInfoReview1_lblLobbyistCompany"
	idLobbyistFirstName = "ContentPlaceHolder1_LRegistrationInfoReview1_lblLobbyistFirstName"
	idLobbyistLastName  = "ContentPlaceHolder1_LRegistrationInfoReview1_lblLobbyistLastName"
	idLobbyistIncidental = "ContentPlaceHolder1_LRegistrationInfoReview1_lblIncidental"

	idClientCompany          = "ContentPlaceHolder1_CRegistrationInfoReview1_lblClientCompany"
	idClientOfficerFirstName = "ContentPlaceHolder1_CRegistrationInfoReview1_lblClientAuthorizingOfficerFirstName"
	idClientOfficerLastName  = "ContentPlaceHolder1_CRegistrationInfoReview1_lblClientAuthorizingOfficerLastName"
	idClientBusinessInterest = "ContentPlaceHolder1_CRegistrationInfoReview1_lblBusinessInterest"

	idCompensationTable = "ContentPlaceHolder1_DisclosureReviewDetail1_grdvSalaryPaid"
)

// fieldText returns the trimmed text of the span with the given id, or ""
// when the element is missing. Absence is common: individual filers have
// no company span, entity filers have no first/last name spans.
func fieldText(doc *goquery.Document, id string) string {
	return strings.TrimSpace(doc.Find("span#" + id).First().Text())
}

func hasElement(doc *goquery.Document, id string) bool {
	return doc.Find("span#"+id).Length() > 0
}

// Filer is the document's primary filer identity, used as the ambient
// name when no closer label scopes a table.
type Filer struct {
	FirstName string
	LastName  string
	Employer  string
}

// a filer is an individual iff both name fields are populated; anything
// else is treated as an organization filing under its employer name.
func (f Filer) IsIndividual() bool {
	return f.FirstName != "" && f.LastName != ""
}

func (f Filer) DisplayName() string {
	if f.IsIndividual() {
		return strings.TrimSpace(f.FirstName + " " + f.LastName)
	}
	return f.Employer
}

var sysvalueRegex = regexp.MustCompile(`sysvalue=([^&]+)`)

// DisclosureID derives the stable document key from its source locator:
// the value of the sysvalue= query parameter with %2f decoded back to a
// slash, or the bare filename without extension when no such parameter
// exists. The locator may be the original disclosure URL or the name of a
// file saved by the fetcher, which embeds the query in the filename.
func DisclosureID(locator string) string {
	if m := sysvalueRegex.FindStringSubmatch(locator); m != nil {
		v := strings.TrimSuffix(m[1], ".html")
		return strings.ReplaceAll(v, "%2f", "/")
	}
	base := filepath.Base(locator)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
