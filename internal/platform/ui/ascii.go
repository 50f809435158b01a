// internal/platform/ui/ascii.go
package ui

// VajraBanner - cabecera principal
const VajraBanner = `
 ██╗   ██╗ █████╗      ██╗██████╗  █████╗
 ██║   ██║██╔══██╗     ██║██╔══██╗██╔══██╗
 ██║   ██║███████║     ██║██████╔╝███████║
 ╚██╗ ██╔╝██╔══██║██   ██║██╔══██╗██╔══██║
  ╚████╔╝ ██║  ██║╚█████╔╝██║  ██║██║  ██║
   ╚═══╝  ╚═╝  ╚═╝ ╚════╝ ╚═╝  ╚═╝╚═╝  ╚═╝
        reconnaissance pipeline
`

// VajraBannerMinimal - para terminales estrechas
const VajraBannerMinimal = `
 VAJRA :: reconnaissance pipeline
`
