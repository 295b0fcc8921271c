package rdf

// Namespaces used by the driver.
const (
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

// XSD and RDF datatypes recognized by the coercion table.
var (
	XSDString             = NewIRI(XSDNamespace + "string")
	XSDBoolean            = NewIRI(XSDNamespace + "boolean")
	XSDDecimal            = NewIRI(XSDNamespace + "decimal")
	XSDInteger            = NewIRI(XSDNamespace + "integer")
	XSDLong               = NewIRI(XSDNamespace + "long")
	XSDInt                = NewIRI(XSDNamespace + "int")
	XSDShort              = NewIRI(XSDNamespace + "short")
	XSDByte               = NewIRI(XSDNamespace + "byte")
	XSDNonNegativeInteger = NewIRI(XSDNamespace + "nonNegativeInteger")
	XSDPositiveInteger    = NewIRI(XSDNamespace + "positiveInteger")
	XSDNonPositiveInteger = NewIRI(XSDNamespace + "nonPositiveInteger")
	XSDNegativeInteger    = NewIRI(XSDNamespace + "negativeInteger")
	XSDUnsignedLong       = NewIRI(XSDNamespace + "unsignedLong")
	XSDUnsignedInt        = NewIRI(XSDNamespace + "unsignedInt")
	XSDUnsignedShort      = NewIRI(XSDNamespace + "unsignedShort")
	XSDUnsignedByte       = NewIRI(XSDNamespace + "unsignedByte")
	XSDFloat              = NewIRI(XSDNamespace + "float")
	XSDDouble             = NewIRI(XSDNamespace + "double")
	XSDDateTime           = NewIRI(XSDNamespace + "dateTime")
	XSDDateTimeStamp      = NewIRI(XSDNamespace + "dateTimeStamp")
	XSDDate               = NewIRI(XSDNamespace + "date")
	XSDTime               = NewIRI(XSDNamespace + "time")
	XSDDuration           = NewIRI(XSDNamespace + "duration")
	XSDDayTimeDuration    = NewIRI(XSDNamespace + "dayTimeDuration")
	XSDYearMonthDuration  = NewIRI(XSDNamespace + "yearMonthDuration")
	XSDAnyURI             = NewIRI(XSDNamespace + "anyURI")
	XSDHexBinary          = NewIRI(XSDNamespace + "hexBinary")
	XSDBase64Binary       = NewIRI(XSDNamespace + "base64Binary")
	XSDNormalizedString   = NewIRI(XSDNamespace + "normalizedString")
	XSDToken              = NewIRI(XSDNamespace + "token")
	XSDLanguage           = NewIRI(XSDNamespace + "language")

	RDFLangString = NewIRI(RDFNamespace + "langString")
)
