package marker_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMarker(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Marker Suite")
}
