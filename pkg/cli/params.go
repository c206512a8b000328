package cli

import (
	"os"
	"strings"

	"github.com/chazu/wingbox/pkg/config"
	"github.com/chazu/wingbox/pkg/script"
	"github.com/chazu/wingbox/pkg/wing"
)

// loadParameters resolves design parameters from --params or --script.
// Neither flag set means the built-in default wing. The returned config is
// non-nil only when a YAML file was loaded.
func loadParameters(paramsPath, scriptPath string) (*wing.DesignParameters, *config.Config, error) {
	if paramsPath != "" && scriptPath != "" {
		return nil, nil, NewExitError(ExitCommandError, "--params and --script are mutually exclusive")
	}

	switch {
	case scriptPath != "":
		src, err := os.ReadFile(scriptPath)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "read script", err)
		}
		p, evalErrs, err := script.NewEngine().Evaluate(string(src))
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "evaluate script", err)
		}
		if len(evalErrs) > 0 {
			msgs := make([]string, len(evalErrs))
			for i, e := range evalErrs {
				msgs[i] = e.Error()
			}
			return nil, nil, NewExitError(ExitFailure, "script: "+strings.Join(msgs, "; "))
		}
		return p, nil, nil

	case paramsPath != "":
		cfg, err := config.Load(paramsPath)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "load config", err)
		}
		p, err := cfg.Parameters()
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "load config", err)
		}
		return p, cfg, nil

	default:
		p := wing.Default()
		return &p, nil, nil
	}
}

// loadErrorCode maps a loader failure onto its display code. The loader
// produces command errors (bad paths, malformed files) and script
// evaluation failures; nothing else.
func loadErrorCode(err error) string {
	if GetExitCode(err) == ExitCommandError {
		return "input"
	}
	return "script"
}
