package querycache

import "fmt"

func errNoFetch(key Key) error {
	return fmt.Errorf("querycache: no fetch function registered for %q", key)
}
