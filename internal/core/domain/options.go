package domain

import (
	"iter"
	"maps"
	"slices"
)

// OptionName identifies an option understood by the analysis tool.
type OptionName string

// Recognized option names. Each one is passed to the analysis tool as --name=value.
const (
	OptReportDir            OptionName = "reportDir"
	OptInScopeClasses       OptionName = "inScopeClasses"
	OptTargetClasses        OptionName = "targetClasses"
	OptTargetTests          OptionName = "targetTests"
	OptDependencyDistance   OptionName = "dependencyDistance"
	OptThreads              OptionName = "threads"
	OptMutateStaticInits    OptionName = "mutateStaticInits"
	OptIncludeJarFiles      OptionName = "includeJarFiles"
	OptMutators             OptionName = "mutators"
	OptExcludedMethods      OptionName = "excludedMethods"
	OptExcludedClasses      OptionName = "excludedClasses"
	OptAvoidCallsTo         OptionName = "avoidCallsTo"
	OptVerbose              OptionName = "verbose"
	OptTimeoutFactor        OptionName = "timeoutFactor"
	OptTimeoutConst         OptionName = "timeoutConst"
	OptMaxMutationsPerClass OptionName = "maxMutationsPerClass"
	OptJvmArgs              OptionName = "jvmArgs"
	OptOutputFormats        OptionName = "outputFormats"
	OptSourceDir            OptionName = "sourceDir"
)

// RecognizedOptions lists every option name in declaration order.
var RecognizedOptions = []OptionName{
	OptReportDir,
	OptInScopeClasses,
	OptTargetClasses,
	OptTargetTests,
	OptDependencyDistance,
	OptThreads,
	OptMutateStaticInits,
	OptIncludeJarFiles,
	OptMutators,
	OptExcludedMethods,
	OptExcludedClasses,
	OptAvoidCallsTo,
	OptVerbose,
	OptTimeoutFactor,
	OptTimeoutConst,
	OptMaxMutationsPerClass,
	OptJvmArgs,
	OptOutputFormats,
	OptSourceDir,
}

// RequiredOptions are checked in this order before an invocation is built,
// so the first missing one is the one reported.
var RequiredOptions = []OptionName{
	OptTargetClasses,
	OptReportDir,
	OptSourceDir,
}

// IsRecognized reports whether n is one of RecognizedOptions.
func (n OptionName) IsRecognized() bool {
	return slices.Contains(RecognizedOptions, n)
}

// String returns the option name.
func (n OptionName) String() string {
	return string(n)
}

// Option is a single name/value pair.
type Option struct {
	Name  OptionName
	Value string
}

// Flag renders the option as a command-line flag. The value is passed verbatim.
func (o Option) Flag() string {
	return "--" + string(o.Name) + "=" + o.Value
}

// Options holds the options set on a task. The last value set for a name wins.
// Options is not safe for concurrent use; it belongs to a single task.
type Options struct {
	values map[OptionName]string
}

// NewOptions creates an empty option set.
func NewOptions() *Options {
	return &Options{values: make(map[OptionName]string)}
}

// Set stores value under name, replacing any previous value.
func (o *Options) Set(name OptionName, value string) {
	o.values[name] = value
}

// Contains reports whether a value was set for name.
func (o *Options) Contains(name OptionName) bool {
	_, ok := o.values[name]
	return ok
}

// Get returns the value set for name.
func (o *Options) Get(name OptionName) (string, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Len returns the number of options set.
func (o *Options) Len() int {
	return len(o.values)
}

// Entries yields every stored option ordered by name.
func (o *Options) Entries() iter.Seq2[OptionName, string] {
	return func(yield func(OptionName, string) bool) {
		for _, name := range slices.Sorted(maps.Keys(o.values)) {
			if !yield(name, o.values[name]) {
				return
			}
		}
	}
}
