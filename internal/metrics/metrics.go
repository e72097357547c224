// Package metrics exposes the broker's prometheus collectors.
package metrics

const namespace = "swapbroker"

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
