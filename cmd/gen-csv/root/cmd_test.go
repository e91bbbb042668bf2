package root_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/openshift/dedicated-admin-operator/cmd/gen-csv/root"
	"github.com/openshift/dedicated-admin-operator/pkg/lib/csvgen"
	"github.com/openshift/dedicated-admin-operator/pkg/lib/csvgen/csvgenfakes"
	libunstructured "github.com/openshift/dedicated-admin-operator/pkg/lib/unstructured"
)

const (
	templatePath = "../../../scripts/templates/csv-template.yaml"
	manifestsDir = "../../../manifests"
	image        = "quay.io/openshift-sre/dedicated-admin-operator:v0.1.189-3f73a59"
)

var _ = Describe("gen-csv", func() {
	var (
		source *csvgenfakes.FakeVersionSource
		out    string
		stdout *bytes.Buffer
		stderr *bytes.Buffer
		cmd    *cobra.Command
	)

	execute := func(args ...string) error {
		cmd.SetArgs(append([]string{"--template", templatePath, "--manifests-dir", manifestsDir}, args...))
		return cmd.ExecuteContext(context.Background())
	}

	BeforeEach(func() {
		source = &csvgenfakes.FakeVersionSource{}
		source.CommitCountReturns(189, nil)
		source.CommitHashReturns("3f73a592c0ffee", nil)
		out = GinkgoT().TempDir()
		stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}

		now := time.Date(2026, time.October, 17, 6, 30, 0, 0, time.UTC)
		cmd = root.NewCmd(source, clocktesting.NewFakePassiveClock(now))
		cmd.SetOut(stdout)
		cmd.SetErr(stderr)
	})

	Context("with valid arguments", func() {
		It("writes the CSV into the versioned directory", func() {
			Expect(execute(out, csvgen.UndefinedVersion, image)).To(Succeed())

			path := filepath.Join(out, "dedicated-admin-operator", "0.1.189-3f73a59",
				"dedicated-admin-operator.v0.1.189-3f73a59.clusterserviceversion.yaml")
			Expect(stdout.String()).To(Equal("Wrote ClusterServiceVersion: " + path + "\n"))
			Expect(path).To(BeARegularFile())

			csv, err := libunstructured.FromFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(csv.GetName()).To(Equal("dedicated-admin-operator.v0.1.189-3f73a59"))
			Expect(csv.GetAnnotations()).To(HaveKeyWithValue("createdAt", "2026-10-17T06:30:00Z"))
			Expect(csv.Object["spec"]).NotTo(HaveKey("replaces"))
		})

		It("sets replaces from the previous version", func() {
			Expect(execute(out, "0.1.188-aaaaaaa", image)).To(Succeed())

			path := filepath.Join(csvgen.VersionDir(out, csvgen.DefaultOperatorName, "0.1.189-3f73a59"),
				csvgen.CSVFileName(csvgen.DefaultOperatorName, "0.1.189-3f73a59"))
			csv, err := libunstructured.FromFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(csv.Object["spec"]).To(HaveKeyWithValue("replaces", "dedicated-admin-operator.v0.1.188-aaaaaaa"))
		})

		It("passes validation", func() {
			Expect(execute("--validate", out, csvgen.UndefinedVersion, image)).To(Succeed())
			Expect(stdout.String()).To(HavePrefix("Wrote ClusterServiceVersion: "))
		})

		It("takes flag values from the environment", func() {
			Expect(os.Setenv("GEN_CSV_VERSION_BASE", "2.5")).To(Succeed())
			DeferCleanup(os.Unsetenv, "GEN_CSV_VERSION_BASE")

			Expect(execute(out, csvgen.UndefinedVersion, image)).To(Succeed())
			Expect(filepath.Join(out, "dedicated-admin-operator", "2.5.189-3f73a59")).To(BeADirectory())
		})

		It("prefers flags over the environment", func() {
			Expect(os.Setenv("GEN_CSV_VERSION_BASE", "2.5")).To(Succeed())
			DeferCleanup(os.Unsetenv, "GEN_CSV_VERSION_BASE")

			Expect(execute("--version-base", "3.0", out, csvgen.UndefinedVersion, image)).To(Succeed())
			Expect(filepath.Join(out, "dedicated-admin-operator", "3.0.189-3f73a59")).To(BeADirectory())
		})
	})

	Context("with invalid arguments", func() {
		It("prints usage and fails", func() {
			err := execute(out, csvgen.UndefinedVersion)
			Expect(err).To(MatchError(ContainSubstring("accepts 3 arg(s), received 2")))
			Expect(stderr.String()).To(ContainSubstring("Error: accepts 3 arg(s)"))
			Expect(stdout.String()).To(ContainSubstring("Usage:"))
			Expect(source.CommitCountCallCount()).To(BeZero())
		})

		It("rejects extra arguments", func() {
			Expect(execute(out, csvgen.UndefinedVersion, image, "extra")).NotTo(Succeed())
			entries, err := os.ReadDir(out)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})

		It("rejects a malformed image reference", func() {
			err := execute(out, csvgen.UndefinedVersion, "Not A Valid Image")
			Expect(err).To(MatchError(ContainSubstring("invalid image reference")))
			Expect(stderr.String()).To(ContainSubstring(`Error: invalid image reference "Not A Valid Image"`))
			Expect(stdout.String()).To(ContainSubstring("Usage:"))
			Expect(source.CommitCountCallCount()).To(BeZero())
		})
	})

	Context("when generation fails", func() {
		It("reports the error without usage", func() {
			source.CommitCountReturns(0, errors.New("fatal: not a git repository"))

			err := execute(out, csvgen.UndefinedVersion, image)
			Expect(err).To(MatchError(ContainSubstring("not a git repository")))
			Expect(stdout.String()).To(BeEmpty())
			// reported once, through the logger
			Expect(stderr.String()).To(BeEmpty())
		})
	})

	It("prints its version", func() {
		cmd.SetArgs([]string{"version"})
		Expect(cmd.Execute()).To(Succeed())
		Expect(stdout.String()).To(MatchRegexp(`^gen-csv \S+, git commit: `))
		Expect(source.CommitCountCallCount()).To(BeZero())
	})
})
