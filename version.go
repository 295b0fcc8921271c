package gosparql

// SPARQLGoDriverVersion is the version of the Go SPARQL driver.
const SPARQLGoDriverVersion = "0.1.0"

const userAgentProduct = "gosparql"
