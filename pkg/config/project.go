package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pcbtools/netsvg/pkg/colors"
)

// DiscoverProject returns the path of the KiCad project file next to a
// board, if one exists: board.kicad_pcb -> board.kicad_pro.
func DiscoverProject(boardPath string) (string, bool) {
	ext := filepath.Ext(boardPath)
	proPath := strings.TrimSuffix(boardPath, ext) + ".kicad_pro"
	info, err := os.Stat(proPath)
	if err != nil || info.IsDir() {
		return "", false
	}
	return proPath, true
}

// LoadProjectColors reads net colors from a .kicad_pro file. Projects use
// the net_settings.net_colors layout; a project without that section
// yields an empty rule set, not an error.
func LoadProjectColors(path string, logger *log.Logger) (colors.RuleSet, error) {
	return LoadNetColors(path, logger)
}
