// internal/core/domain/artifacts.go
package domain

// Nombres fijos de los artifacts en Logs/. Son el contrato entre módulos,
// el Data Bridge y el agregador.
const (
	ArtifactWhois     = "whois.txt"
	ArtifactDig       = "dig.txt"
	ArtifactSubfinder = "subfinder.txt"
	ArtifactAmass     = "amass.txt"
	ArtifactMerged    = "merged_subs.txt"
	ArtifactAliveJSON = "alive.json"
	ArtifactAlive     = "alive.txt"

	// ArtifactNmapGlob cubre los informes nmap_<label>.xml
	ArtifactNmapGlob = "nmap_*.xml"
)

// NmapArtifact devuelve el nombre del informe XML para un tipo de escaneo.
func NmapArtifact(label string) string {
	return "nmap_" + label + ".xml"
}
