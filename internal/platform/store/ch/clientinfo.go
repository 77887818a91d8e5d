package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo describes this process to the server, e.g. role "api" or "rollup"
func BuildClientInfo(role, tag string) clickhouse.ClientInfo {
	host, _ := os.Hostname()
	info := clickhouse.ClientInfo{}
	for _, p := range [][2]string{
		{"doomscroll", tag},
		{"role", role},
		{"go", runtime.Version()},
		{"commit", vcsRevision()},
		{"host", host},
	} {
		v := strings.TrimSpace(p[1])
		if v == "" {
			continue
		}
		info.Products = append(info.Products, struct{ Name, Version string }{p[0], v})
	}
	return info
}

func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
