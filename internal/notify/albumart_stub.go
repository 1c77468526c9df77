//go:build !linux

package notify

func coverIcon(_ string) string {
	return ""
}
