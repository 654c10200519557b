package modules

import "github.com/image2radiomics/i2r/pkg/pipeline"

// argList assembles a worker argv, preserving the exact flag order and
// spellings the worker tools have always accepted.
type argList struct {
	args []string
}

func (a *argList) val(flag, value string) *argList {
	a.args = append(a.args, flag, value)
	return a
}

func (a *argList) opt(flag string, p pipeline.Params, key string) *argList {
	return a.val(flag, p.String(key))
}

func (a *argList) on(flag string, cond bool) *argList {
	if cond {
		a.args = append(a.args, flag)
	}
	return a
}

// logging appends the -v / --new_log toggles shared by most workers.
func (a *argList) logging(p pipeline.Params) *argList {
	a.on("-v", p.Bool("verbose", false))
	a.on("--new_log", p.Bool("new_log_file", false))
	return a
}

// filters appends the -S / --include dataset filters when set.
func (a *argList) filters(p pipeline.Params) *argList {
	if p.String("skip") != "" {
		a.val("-S", p.String("skip"))
	}
	if p.String("include") != "" {
		a.val("--include", p.String("include"))
	}
	return a
}

// applyCommon fills the option defaults shared by every module.
func applyCommon(p pipeline.Params) {
	p.SetDefault("timer", false)
	p.SetDefault("verbose", false)
	p.SetDefault("log", "")
}

// applyBatch adds the defaults of the batch-processing modules.
func applyBatch(p pipeline.Params) {
	applyCommon(p)
	p.SetDefault("new_log_file", false)
	p.SetDefault("skip", "")
	p.SetDefault("include", "")
	p.SetDefault("multiprocessing", int64(1))
}
