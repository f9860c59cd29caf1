package unraid

import (
	"fmt"
	"math"
	"strconv"
)

const (
	kbPerMB = 1024
	kbPerGB = 1024 * 1024
	kbPerTB = 1024 * 1024 * 1024
)

// formatKilobytes renders a kilobyte figure at the largest scale it fills,
// two decimal places for MB and above. A missing figure renders as "N/A".
func formatKilobytes(v any) string {
	k, ok := asInt64(v)
	if !ok {
		return "N/A"
	}
	switch {
	case k >= kbPerTB:
		return fmt.Sprintf("%.2f TB", float64(k)/kbPerTB)
	case k >= kbPerGB:
		return fmt.Sprintf("%.2f GB", float64(k)/kbPerGB)
	case k >= kbPerMB:
		return fmt.Sprintf("%.2f MB", float64(k)/kbPerMB)
	default:
		return fmt.Sprintf("%d KB", k)
	}
}

// asInt64 coerces the numeric shapes a decoded JSON payload can carry.
// The upstream reports kilobyte figures as numbers or numeric strings.
func asInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case int64:
		return t, true
	case int:
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// stringify renders a raw field for inclusion in a summary string. Missing
// fields render as the empty string rather than being omitted, so adjacent
// separators may appear next to blanks. Whole numbers drop the fraction.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// systemSummary derives the human-readable view of the info payload.
func systemSummary(info map[string]any, includeVersions bool) map[string]any {
	summary := map[string]any{}

	if osInfo, ok := info["os"].(map[string]any); ok && len(osInfo) > 0 {
		summary["os"] = fmt.Sprintf("%s %s (%s)",
			stringify(osInfo["distro"]), stringify(osInfo["release"]), stringify(osInfo["platform"]))
		summary["hostname"] = osInfo["hostname"]
		summary["uptime"] = osInfo["uptime"]
	}

	if cpu, ok := info["cpu"].(map[string]any); ok && len(cpu) > 0 {
		summary["cpu"] = fmt.Sprintf("%s %s (%s cores, %s threads)",
			stringify(cpu["manufacturer"]), stringify(cpu["brand"]),
			stringify(cpu["cores"]), stringify(cpu["threads"]))
	}

	if includeVersions {
		if versions, ok := info["versions"].(map[string]any); ok && len(versions) > 0 {
			summary["unraid_version"] = versions["unraid"]
		}
	}

	return summary
}

// arraySummary derives state and disk counts, plus formatted capacity
// figures when the front end asks for them.
func arraySummary(arr map[string]any, includeCapacity bool) map[string]any {
	disks, _ := arr["disks"].([]any)
	parities, _ := arr["parities"].([]any)

	summary := map[string]any{
		"state":            arr["state"],
		"num_data_disks":   len(disks),
		"num_parity_disks": len(parities),
	}

	if !includeCapacity {
		return summary
	}
	capacity, ok := arr["capacity"].(map[string]any)
	if !ok {
		return summary
	}
	kilobytes, ok := capacity["kilobytes"].(map[string]any)
	if !ok {
		return summary
	}
	summary["capacity"] = map[string]string{
		"total": formatKilobytes(kilobytes["total"]),
		"used":  formatKilobytes(kilobytes["used"]),
		"free":  formatKilobytes(kilobytes["free"]),
	}
	return summary
}

// ContainerSummary counts containers by state. States other than "running"
// and "exited" contribute to Total only.
type ContainerSummary struct {
	Total   int `json:"total"`
	Running int `json:"running"`
	Stopped int `json:"stopped"`
}

func containerCounts(containers []any) ContainerSummary {
	counts := ContainerSummary{Total: len(containers)}
	for _, c := range containers {
		entry, ok := c.(map[string]any)
		if !ok {
			continue
		}
		switch entry["state"] {
		case "running":
			counts.Running++
		case "exited":
			counts.Stopped++
		}
	}
	return counts
}
