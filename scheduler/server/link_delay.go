package server

import (
	"github.com/tempodev/tempo/scheduler/domain"
)

// linkDelay returns the communication delay between two nodes. (start, end)
// pairs are expected to be unique in the link list; if duplicates exist the
// first match in list order wins. A missing link means the nodes
// communicate for free.
func linkDelay(links []domain.Link, startNode, endNode string) int64 {
	for _, link := range links {
		if link.StartNode == startNode && link.EndNode == endNode {
			return link.LinkDelay
		}
	}
	return 0
}
