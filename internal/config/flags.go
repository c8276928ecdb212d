package config

import "flag"

// parseFlags defines one flag per config field on fs and parses args.
// Flags default to the values loaded so far, so only explicitly set flags
// change anything.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todolist", flag.ContinueOnError)
	}

	byFlag := make(map[string]string)
	for _, f := range configFields() {
		target := f.value(cfg)
		fs.StringVar(target, f.flag, *target, f.usage)
		byFlag[f.flag] = f.key
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(fl *flag.Flag) {
		if key, ok := byFlag[fl.Name]; ok {
			setSource(sources, key, SourceFlag)
		}
	})
	return nil
}
