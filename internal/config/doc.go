// Package config loads and saves the cdu-bridge configuration file.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/cdubridge/config.yaml or $HOME/.config/cdubridge/config.yaml
//   - macOS: $HOME/.config/cdubridge/config.yaml
//   - Windows: %LOCALAPPDATA%\cdubridge\config.yaml
//
// A missing file is not an error: Load returns Default. Keys absent from the
// file keep their default values, so a file may override just one setting:
//
//	version: 1
//	display:
//	  url: ws://192.168.1.20:8320/winwing/cdu-captain
//
// # Button Map
//
// The buttons section reassigns hardware ids. Validate compiles the map and
// rejects layouts where two functions share an id.
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	lib := flightplan.NewLibrary(cfg.Flightplans.Dir, cfg.Flightplans.Extension)
package config
