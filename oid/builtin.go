// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package oid

// A BuiltIn identifies one of the object identifiers registered when the
// registry is initialized. The value of a BuiltIn is its registry [ID].
type BuiltIn ID

const (
	Algorithm BuiltIn = iota
	RSADSI
	PKCS
	MD2
	MD5
	RC4
	RSAEncryption
	MD2WithRSAEncryption
	MD5WithRSAEncryption
	PBEWithMD2AndDESCBC
	PBEWithMD5AndDESCBC
	X500
	X509
	CommonName
	CountryName
	LocalityName
	StateOrProvinceName
	OrganizationName
	OrganizationalUnitName
	RSA
	PKCS7
	PKCS7Data
	PKCS7Signed
	PKCS7Enveloped
	PKCS7SignedAndEnveloped
	PKCS7Digest
	PKCS7Encrypted
	PKCS3
	DHKeyAgreement
	DESECB
	DESCFB64
	DESCBC
	DESEDE
	RC2CBC
	SHA
	SHAWithRSAEncryption
	DESEDE3CBC
	DESOFB64
	PKCS9
	PKCS9EmailAddress
	PKCS9UnstructuredName
	PKCS9ContentType
	PKCS9MessageDigest
	PKCS9SigningTime
	PKCS9Countersignature
	PKCS9ChallengePassword
	PKCS9UnstructuredAddress
	PKCS9ExtCertAttributes
	Netscape
	NetscapeCertExtension
	NetscapeDataType
	SHA1
	SHA1WithRSAEncryption
	DSAWithSHA
	DSA2
	PBEWithSHA1AndRC2CBC
	PBEWithSHA1AndRC4
	DSAWithSHA1v2
	NetscapeCertType
	NetscapeBaseURL
	NetscapeRevocationURL
	NetscapeCARevocationURL
	NetscapeRenewalURL
	NetscapeCAPolicyURL
	NetscapeSSLServerName
	NetscapeComment
	NetscapeCertSequence
	LdCE
	SubjectKeyIdentifier
	KeyUsage
	PrivateKeyUsagePeriod
	SubjectAltName
	IssuerAltName
	BasicConstraints
	CRLNumber
	CertificatePolicies
	AuthorityKeyIdentifier
	MDC2
	MDC2WithRSA
	GivenName
	Surname
	Initials
	UniqueIdentifier
	CRLDistributionPoints
	MD5WithRSA
	SerialNumber
	Title
	Description
	CAST5CBC
	PBEWithMD5AndCAST5CBC
	DSAWithSHA1
	SHA1WithRSA
	DSA
	RIPEMD160
	RIPEMD160WithRSA
	RC5CBC

	numBuiltIns = iota
)

// builtinNames are the registered names of the built-in entries, indexed by
// BuiltIn. These are the names used in the embedded dataset.
var builtinNames = [numBuiltIns]string{
	"algorithm", "rsadsi", "pkcs", "md2", "md5", "rc4", "rsaEncryption",
	"md2WithRSAEncryption", "md5WithRSAEncryption", "pbeWithMD2AndDES_CBC",
	"pbeWithMD5AndDES_CBC", "X500", "X509", "commonName", "countryName",
	"localityName", "stateOrProvinceName", "organizationName",
	"organizationalUnitName", "rsa", "pkcs7", "pkcs7_data", "pkcs7_signed",
	"pkcs7_enveloped", "pkcs7_signedAndEnveloped", "pkcs7_digest",
	"pkcs7_encrypted", "pkcs3", "dhKeyAgreement", "des_ecb", "des_cfb64",
	"des_cbc", "des_ede", "rc2_cbc", "sha", "shaWithRSAEncryption",
	"des_ede3_cbc", "des_ofb64", "pkcs9", "pkcs9_emailAddress",
	"pkcs9_unstructuredName", "pkcs9_contentType", "pkcs9_messageDigest",
	"pkcs9_signingTime", "pkcs9_countersignature", "pkcs9_challengePassword",
	"pkcs9_unstructuredAddress", "pkcs9_extCertAttributes", "netscape",
	"netscape_cert_extension", "netscape_data_type", "sha1",
	"sha1WithRSAEncryption", "dsaWithSHA", "dsa_2", "pbeWithSHA1AndRC2_CBC",
	"pbeWithSHA1AndRC4", "dsaWithSHA1_2", "netscape_cert_type",
	"netscape_base_url", "netscape_revocation_url",
	"netscape_ca_revocation_url", "netscape_renewal_url",
	"netscape_ca_policy_url", "netscape_ssl_server_name", "netscape_comment",
	"netscape_cert_sequence", "ld_ce", "subject_key_identifier", "key_usage",
	"private_key_usage_period", "subject_alt_name", "issuer_alt_name",
	"basic_constraints", "crl_number", "certificate_policies",
	"authority_key_identifier", "mdc2", "mdc2WithRSA", "givenName", "surname",
	"initials", "uniqueIdentifier", "crl_distribution_points", "md5WithRSA",
	"serialNumber", "title", "description", "cast5_cbc",
	"pbeWithMD5AndCast5_CBC", "dsaWithSHA1", "sha1WithRSA", "dsa", "ripemd160",
	"ripemd160WithRSA", "rc5_cbc",
}

// builtinIDs maps built-in names to their ids.
var builtinIDs = func() map[string]BuiltIn {
	m := make(map[string]BuiltIn, numBuiltIns)
	for i, name := range builtinNames {
		m[name] = BuiltIn(i)
	}
	return m
}()

// String returns the registered name of b.
func (b BuiltIn) String() string {
	if b < numBuiltIns {
		return builtinNames[b]
	}
	return "BuiltIn(" + ID(b).String() + ")"
}

// OID returns the registry entry for b. For any of the BuiltIn constants
// defined by this package OID always succeeds; for any other value it panics.
func (b BuiltIn) OID() Entry {
	e, ok := ByID(ID(b))
	if !ok || b >= numBuiltIns {
		panic("oid: unknown built-in " + b.String())
	}
	return e
}

// Path is shorthand for b.OID().Path.
func (b BuiltIn) Path() Path { return b.OID().Path }

// BuiltInByName returns the BuiltIn with the given registered name, and
// reports whether it exists.
func BuiltInByName(name string) (BuiltIn, bool) {
	b, ok := builtinIDs[name]
	return b, ok
}

// BuiltIns returns all the BuiltIn values in order of their ids.
func BuiltIns() []BuiltIn {
	out := make([]BuiltIn, numBuiltIns)
	for i := range out {
		out[i] = BuiltIn(i)
	}
	return out
}
