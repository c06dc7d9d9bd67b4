//go:build windows

package jvm

func javaBinary() string { return "java.exe" }
