package domain

// DocumentType enumerates the credential files a worker must upload.
type DocumentType string

const (
	DocumentTenthCertificate      DocumentType = "10th_certificate"
	DocumentTwelfthCertificate    DocumentType = "12th_certificate"
	DocumentGraduationCertificate DocumentType = "graduation_certificate"
	DocumentResume                DocumentType = "resume"
	DocumentKYC                   DocumentType = "kyc_document"
)

// RequiredDocumentTypes is the fixed set a worker must have approved to
// count as fully verified.
var RequiredDocumentTypes = []DocumentType{
	DocumentTenthCertificate,
	DocumentTwelfthCertificate,
	DocumentGraduationCertificate,
	DocumentResume,
	DocumentKYC,
}

// DocumentStatus is the per-document verification state.
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
)

// IsRequiredDocumentType reports whether t belongs to the required set.
func IsRequiredDocumentType(t DocumentType) bool {
	for _, r := range RequiredDocumentTypes {
		if r == t {
			return true
		}
	}
	return false
}

// RequiredDocumentTypeNames returns the required set as plain strings,
// for use in SQL array parameters.
func RequiredDocumentTypeNames() []string {
	names := make([]string, len(RequiredDocumentTypes))
	for i, t := range RequiredDocumentTypes {
		names[i] = string(t)
	}
	return names
}
