package field

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestGraphBuilders(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Graph Builder Suite")
}
