package domain

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// MainEntryPoint is the class the analysis JVM is started with.
const MainEntryPoint = "org.pitest.mutationtest.MutationCoverageReport"

// DefaultJava is the executable used when neither the task nor JAVA_HOME names one.
const DefaultJava = "java"

// Invocation describes one launch of the analysis process.
type Invocation struct {
	// EntryPoint is the fully qualified main class.
	EntryPoint string
	// Classpath is the resolved class path of the analysis JVM.
	Classpath Classpath
	// FailOnError turns a non-zero exit into an error.
	FailOnError bool
	// Fork runs the analysis in a separate JVM and waits for it.
	Fork bool
	// Args holds one --name=value flag per task option.
	Args []string

	// Executable overrides the java binary. Empty means auto-detect.
	Executable string
	// Dir is the working directory of the process.
	Dir string
	// Environment holds variables added to the inherited environment.
	Environment map[string]string
}

// AddArg appends a flag argument.
func (inv *Invocation) AddArg(arg string) {
	inv.Args = append(inv.Args, arg)
}

// JavaArgs returns the arguments passed to the java executable.
func (inv *Invocation) JavaArgs() []string {
	args := make([]string, 0, len(inv.Args)+3)
	if !inv.Classpath.IsEmpty() {
		args = append(args, "-cp", inv.Classpath.String())
	}
	args = append(args, inv.EntryPoint)
	return append(args, inv.Args...)
}

// CommandLine returns the full argv, using java when no executable is set.
func (inv *Invocation) CommandLine() []string {
	exe := inv.Executable
	if exe == "" {
		exe = DefaultJava
	}
	return append([]string{exe}, inv.JavaArgs()...)
}

// Fingerprint returns a stable digest of the entry point, class path and arguments.
func (inv *Invocation) Fingerprint() string {
	d := xxhash.New()
	_, _ = d.WriteString(inv.EntryPoint)
	_, _ = d.Write([]byte{0})
	for _, e := range inv.Classpath.elements {
		_, _ = d.WriteString(e)
		_, _ = d.Write([]byte{0})
	}
	_, _ = d.Write([]byte{0})
	for _, a := range inv.Args {
		_, _ = d.WriteString(a)
		_, _ = d.Write([]byte{0})
	}
	return strconv.FormatUint(d.Sum64(), 16)
}
