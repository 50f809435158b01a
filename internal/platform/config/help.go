// internal/platform/config/help.go
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"
)

const helpText = `
VAJRA - Recon Pipeline Orchestrator

USAGE:
  vajra [-t <target>] [-m <modules>] [options]
  vajra <target>

  Without --target or --modules an interactive menu asks for them.

CORE OPTIONS:
  -t, --target string      Host, IP, CIDR or @file with one target per line
  -m, --modules string     Module ids or names, comma separated; 0/all/*/a = run everything
  -r, --report             Write Reports/report_<target>.html
  -y, --unattended         Never ask per-module questions (nmap scan type...)

MODULES:
  1 whois       registration data (native fallback when the binary is missing)
  2 subfinder   passive subdomain discovery
  3 amass       subdomain enumeration
  4 httpx       live web services (merges subfinder + amass output)
  5 nmap        port and service scan (quick, full, fast, udp)
  6 screenshot  eyewitness screenshots of live services
  7 dig         DNS records

  Run-all uses nmap quick and asks nothing.

OUTPUT OPTIONS:
  -o, --out string         Results directory (default: "Results")
  --ui string              pretty, raw or quiet (default: "pretty")
  --table                  Print a summary table per target on stdout
  --json                   Print final.json on stdout

RUNTIME CONTROL:
  --trigger string         Token that opens the control menu (default: "00")
  --control string         auto (only on a terminal), force or off (default: "auto")
  --menu-timeout duration  Control menu auto-return (default: 5s)
  --prompt-timeout dur     Per-module question timeout (default: 30s)
  --poll duration          Supervision tick, capped at 1s (default: 50ms)
  --grace duration         SIGTERM to SIGKILL wait (default: 5s)

  While a module runs, type the trigger and Enter:
    p  pause     r  resume     s  skip module     q  quit     Enter  return

TOOL OPTIONS:
  --tool name=path         Binary for a module, repeatable (e.g. --tool httpx=httpx-toolkit)
  --timeout name=duration  Timeout for a module, repeatable (e.g. --timeout nmap=3h)
  --nmap-scan string       Default nmap scan for explicit selections (default: "quick")
  --check                  Report which tool binaries are missing and exit

INFO:
  -c, --config string      YAML configuration file
  --log-level string       debug, info, warn, error, off (default: "info")
  -v, --version            Print version information and exit
  -h, --help               Show this help message

EXAMPLES:
  Everything against one domain:
    vajra -t example.com -m all

  Discovery and probing with a report:
    vajra -t example.com -m subfinder,amass,httpx -r

  A list of targets, unattended:
    vajra -t @scope.txt -m 1,7,5 -y

ENVIRONMENT VARIABLES:
  Most flags can be set via environment variables with the VAJRA_ prefix:

  VAJRA_TARGET, VAJRA_MODULES, VAJRA_REPORT, VAJRA_UNATTENDED
  VAJRA_OUTPUT_DIR, VAJRA_UI, VAJRA_TABLE
  VAJRA_POLL_INTERVAL, VAJRA_GRACE, VAJRA_PROMPT_TIMEOUT, VAJRA_MENU_TIMEOUT
  VAJRA_TRIGGER, VAJRA_CONTROL, VAJRA_NMAP_SCAN, VAJRA_LOG_LEVEL
  VAJRA_CONFIG                      YAML configuration file

  Per module (replace HTTPX with the module name):
  VAJRA_TOOLS_HTTPX=httpx-toolkit
  VAJRA_TIMEOUTS_HTTPX=180s

  Precedence: defaults < config file < environment < flags.

OUTPUT:
  Results/[<list>/]<target>_<YYYYmmdd_HHMMSS>/
    Logs/         raw tool output
    JSON/         final.json
    Reports/      HTML report (--report)
    Screenshots/  eyewitness output
`

// HelpText devuelve el texto de ayuda.
func HelpText() string { return helpText }

// WriteHelp escribe la ayuda en w.
func WriteHelp(w io.Writer) {
	fmt.Fprint(w, helpText)
}

// PrintHelp prints the custom help message and exits.
func PrintHelp() {
	WriteHelp(os.Stdout)
	os.Exit(0)
}

// PrintVersion prints version information and exits.
func PrintVersion(version, commit, date string) {
	fmt.Printf("VAJRA %s\n", version)
	fmt.Printf("  Commit:  %s\n", commit)
	fmt.Printf("  Built:   %s\n", date)
	fmt.Printf("  Go:      %s\n", getGoVersion())
	os.Exit(0)
}

func getGoVersion() string {
	return runtime.Version()
}
