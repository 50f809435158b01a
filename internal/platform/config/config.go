// internal/platform/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/platform/errors"
)

// EnvPrefix es el prefijo de todas las variables de entorno.
const EnvPrefix = "VAJRA_"

// Modos del listener de control.
const (
	ControlAuto  = "auto"  // solo si stdin es un terminal
	ControlForce = "force" // siempre
	ControlOff   = "off"   // nunca
)

type Config struct {
	Core     Core                     `yaml:"core"`
	Output   Output                   `yaml:"output"`
	Runtime  Runtime                  `yaml:"runtime"`
	Tools    map[string]string        `yaml:"tools"`    // nombre de módulo -> binario
	Timeouts map[string]time.Duration `yaml:"timeouts"` // nombre de módulo -> timeout
	Nmap     Nmap                     `yaml:"nmap"`
	LogLevel string                   `yaml:"log_level"`

	// Solo CLI
	ConfigPath   string `yaml:"-"`
	PrintVersion bool   `yaml:"-"`
	ShowHelp     bool   `yaml:"-"`
	CheckOnly    bool   `yaml:"-"`
}

type Core struct {
	// Target es un host, IP, CIDR o "@archivo" con una entrada por línea
	Target string `yaml:"target"`

	// Modules es la selección: ids o nombres separados por comas, o 0/all
	Modules    string `yaml:"modules"`
	Report     bool   `yaml:"report"`
	Unattended bool   `yaml:"unattended"`
}

type Output struct {
	Dir string `yaml:"dir"`

	// UI es pretty, raw o quiet
	UI string `yaml:"ui"`

	// Table imprime el resumen de cada target por stdout
	Table bool `yaml:"table"`

	// JSON vuelca el documento final por stdout
	JSON bool `yaml:"json"`
}

type Runtime struct {
	PollInterval  time.Duration `yaml:"poll_interval"`
	Grace         time.Duration `yaml:"grace"`
	PromptTimeout time.Duration `yaml:"prompt_timeout"`
	MenuTimeout   time.Duration `yaml:"menu_timeout"`
	Trigger       string        `yaml:"trigger"`
	Control       string        `yaml:"control"`
}

type Nmap struct {
	// Scan es el tipo de escaneo por defecto en selecciones explícitas
	Scan string `yaml:"scan"`
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Output: Output{
			Dir: "Results",
			UI:  "pretty",
		},
		Runtime: Runtime{
			PollInterval:  50 * time.Millisecond,
			Grace:         5 * time.Second,
			PromptTimeout: 30 * time.Second,
			MenuTimeout:   5 * time.Second,
			Trigger:       "00",
			Control:       ControlAuto,
		},
		Tools:    map[string]string{},
		Timeouts: map[string]time.Duration{},
		Nmap:     Nmap{Scan: "quick"},
		LogLevel: "info",
	}
}

// Load inicializa la configuración: defaults -> archivo YAML -> ENV -> FLAGS.
// Cada capa sobrescribe a la anterior.
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()

	path := configPath(args)
	if path != "" {
		if err := loadFromFile(&cfg, path); err != nil {
			return cfg, err
		}
		cfg.ConfigPath = path
	}

	if err := loadFromEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := loadFromFlags(&cfg, args, io.Discard); err != nil {
		return cfg, err
	}

	normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// configPath busca --config/-c antes de parsear el resto; si no hay, usa
// VAJRA_CONFIG.
func configPath(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			return getenv(EnvPrefix+"CONFIG", "")
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		case (a == "--config" || a == "-c") && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(a, "-c") && len(a) > 2 && !strings.HasPrefix(a, "--"):
			return strings.TrimPrefix(a, "-c")
		}
	}
	return getenv(EnvPrefix+"CONFIG", "")
}

// loadFromFile aplica un archivo YAML sobre cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) error {
	if v := getenv(EnvPrefix+"TARGET", ""); v != "" {
		cfg.Core.Target = v
	}
	if v := getenv(EnvPrefix+"MODULES", ""); v != "" {
		cfg.Core.Modules = v
	}
	if v := getenv(EnvPrefix+"REPORT", ""); v != "" {
		cfg.Core.Report = parseBool(v)
	}
	if v := getenv(EnvPrefix+"UNATTENDED", ""); v != "" {
		cfg.Core.Unattended = parseBool(v)
	}
	if v := getenv(EnvPrefix+"OUTPUT_DIR", ""); v != "" {
		cfg.Output.Dir = v
	}
	if v := getenv(EnvPrefix+"UI", ""); v != "" {
		cfg.Output.UI = v
	}
	if v := getenv(EnvPrefix+"TABLE", ""); v != "" {
		cfg.Output.Table = parseBool(v)
	}
	if v := getenv(EnvPrefix+"TRIGGER", ""); v != "" {
		cfg.Runtime.Trigger = v
	}
	if v := getenv(EnvPrefix+"CONTROL", ""); v != "" {
		cfg.Runtime.Control = v
	}
	if v := getenv(EnvPrefix+"NMAP_SCAN", ""); v != "" {
		cfg.Nmap.Scan = v
	}
	if v := getenv(EnvPrefix+"LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"POLL_INTERVAL", &cfg.Runtime.PollInterval},
		{"GRACE", &cfg.Runtime.Grace},
		{"PROMPT_TIMEOUT", &cfg.Runtime.PromptTimeout},
		{"MENU_TIMEOUT", &cfg.Runtime.MenuTimeout},
	}
	for _, d := range durations {
		v := getenv(EnvPrefix+d.key, "")
		if v == "" {
			continue
		}
		parsed, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, d.key, err)
		}
		*d.dst = parsed
	}

	// Por módulo: VAJRA_TOOLS_HTTPX=httpx-toolkit, VAJRA_TIMEOUTS_NMAP=3h
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" {
			continue
		}
		switch {
		case strings.HasPrefix(key, EnvPrefix+"TOOLS_"):
			name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix+"TOOLS_"))
			cfg.Tools[name] = value
		case strings.HasPrefix(key, EnvPrefix+"TIMEOUTS_"):
			name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix+"TIMEOUTS_"))
			d, err := parseDuration(value)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			cfg.Timeouts[name] = d
		}
	}
	return nil
}

// loadFromFlags parsea flags de CLI sobre los valores ya cargados.
func loadFromFlags(cfg *Config, args []string, out io.Writer) error {
	fs := newFlagSet(cfg, out)

	var tools, timeouts map[string]string
	fs.StringToStringVar(&tools, "tool", nil, "Binario por módulo (name=path), repetible")
	fs.StringToStringVar(&timeouts, "timeout", nil, "Timeout por módulo (name=duración), repetible")

	if err := fs.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	for name, path := range tools {
		cfg.Tools[strings.ToLower(name)] = path
	}
	for name, v := range timeouts {
		d, err := parseDuration(v)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidInput, "--timeout %s: %v", name, err)
		}
		cfg.Timeouts[strings.ToLower(name)] = d
	}

	// Un argumento posicional es el target
	if rest := fs.Args(); len(rest) > 0 && cfg.Core.Target == "" {
		cfg.Core.Target = rest[0]
	}
	return nil
}

func newFlagSet(cfg *Config, out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("vajra", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.SortFlags = false

	// Core
	fs.StringVarP(&cfg.Core.Target, "target", "t", cfg.Core.Target, "Target: host, IP, CIDR o @archivo")
	fs.StringVarP(&cfg.Core.Modules, "modules", "m", cfg.Core.Modules, "Módulos: ids o nombres separados por comas, 0/all = todos")
	fs.BoolVarP(&cfg.Core.Report, "report", "r", cfg.Core.Report, "Generar informe HTML")
	fs.BoolVarP(&cfg.Core.Unattended, "unattended", "y", cfg.Core.Unattended, "No preguntar parámetros por módulo")

	// Output
	fs.StringVarP(&cfg.Output.Dir, "out", "o", cfg.Output.Dir, "Directorio de resultados")
	fs.StringVar(&cfg.Output.UI, "ui", cfg.Output.UI, "Modo de UI: pretty, raw, quiet")
	fs.BoolVar(&cfg.Output.Table, "table", cfg.Output.Table, "Imprimir tabla resumen por target")
	fs.BoolVar(&cfg.Output.JSON, "json", cfg.Output.JSON, "Volcar final.json por stdout")

	// Runtime
	fs.DurationVar(&cfg.Runtime.PollInterval, "poll", cfg.Runtime.PollInterval, "Intervalo de poll (máx. 1s)")
	fs.DurationVar(&cfg.Runtime.Grace, "grace", cfg.Runtime.Grace, "Espera entre SIGTERM y SIGKILL")
	fs.DurationVar(&cfg.Runtime.PromptTimeout, "prompt-timeout", cfg.Runtime.PromptTimeout, "Timeout de preguntas interactivas")
	fs.DurationVar(&cfg.Runtime.MenuTimeout, "menu-timeout", cfg.Runtime.MenuTimeout, "Auto-retorno del menú de control")
	fs.StringVar(&cfg.Runtime.Trigger, "trigger", cfg.Runtime.Trigger, "Token que abre el menú de control")
	fs.StringVar(&cfg.Runtime.Control, "control", cfg.Runtime.Control, "Listener de control: auto, force, off")

	// Modules
	fs.StringVar(&cfg.Nmap.Scan, "nmap-scan", cfg.Nmap.Scan, "Escaneo nmap por defecto: quick, full, fast, udp")

	// Info
	fs.StringVarP(&cfg.ConfigPath, "config", "c", cfg.ConfigPath, "Archivo de configuración YAML")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Nivel de log: debug, info, warn, error, off")
	fs.BoolVar(&cfg.CheckOnly, "check", cfg.CheckOnly, "Comprobar herramientas instaladas y salir")
	fs.BoolVarP(&cfg.PrintVersion, "version", "v", false, "Imprimir versión y salir")
	fs.BoolVarP(&cfg.ShowHelp, "help", "h", false, "Mostrar ayuda")

	return fs
}

func normalize(c *Config) {
	c.Core.Target = strings.TrimSpace(c.Core.Target)
	c.Core.Modules = strings.TrimSpace(c.Core.Modules)
	c.Output.UI = strings.ToLower(strings.TrimSpace(c.Output.UI))
	if c.Output.UI == "" {
		c.Output.UI = "pretty"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "Results"
	}
	c.Runtime.Control = strings.ToLower(strings.TrimSpace(c.Runtime.Control))
	if c.Runtime.Control == "" {
		c.Runtime.Control = ControlAuto
	}
	c.Runtime.Trigger = strings.TrimSpace(c.Runtime.Trigger)
	if c.Runtime.Trigger == "" {
		c.Runtime.Trigger = "00"
	}
	if c.Runtime.PollInterval < 0 {
		c.Runtime.PollInterval = 0
	}
	if c.Runtime.Grace < 0 {
		c.Runtime.Grace = 0
	}
	c.Nmap.Scan = strings.ToLower(strings.TrimSpace(c.Nmap.Scan))
	if c.Tools == nil {
		c.Tools = map[string]string{}
	}
	if c.Timeouts == nil {
		c.Timeouts = map[string]time.Duration{}
	}
}

// Validate comprueba los valores enumerados.
func (c Config) Validate() error {
	switch c.Output.UI {
	case "pretty", "raw", "quiet":
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "ui must be pretty, raw or quiet, got %q", c.Output.UI)
	}
	switch c.Runtime.Control {
	case ControlAuto, ControlForce, ControlOff:
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "control must be auto, force or off, got %q", c.Runtime.Control)
	}
	for name, d := range c.Timeouts {
		if d < 0 {
			return errors.Wrapf(errors.ErrInvalidInput, "timeout for %s cannot be negative", name)
		}
	}
	return nil
}

// ModuleConfigs traduce tools y timeouts (por nombre de módulo) al mapa por
// id que consume el registry. Devuelve los nombres que no resuelven.
func (c Config) ModuleConfigs(resolve func(name string) (domain.ModuleID, bool)) (map[domain.ModuleID]ports.ModuleConfig, []string) {
	out := make(map[domain.ModuleID]ports.ModuleConfig)
	unknown := make(map[string]bool)

	for name, bin := range c.Tools {
		id, ok := resolve(name)
		if !ok {
			unknown[name] = true
			continue
		}
		mc := out[id]
		mc.Binary = bin
		out[id] = mc
	}
	for name, d := range c.Timeouts {
		id, ok := resolve(name)
		if !ok {
			unknown[name] = true
			continue
		}
		mc := out[id]
		mc.Timeout = d
		out[id] = mc
	}

	names := make([]string, 0, len(unknown))
	for n := range unknown {
		names = append(names, n)
	}
	sort.Strings(names)
	return out, names
}

// ToJSON serializa la configuración a JSON (útil para debugging).
func (c Config) ToJSON() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

// parseDuration acepta "90s", "2h" o segundos sin unidad.
func parseDuration(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	return d, nil
}
