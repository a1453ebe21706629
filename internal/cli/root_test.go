package cli_test

import (
	"bytes"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/MacroPower/kluars/internal/cli"
	"github.com/MacroPower/kluars/internal/testutil"
	"github.com/MacroPower/kluars/pkg/kluarserrors"
)

var testDataDir string

func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	testDataDir = filepath.Join(dir, "testdata")
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	tc := cli.NewRootCmd("test_kluars", "", "")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	tc.SetArgs(args)
	tc.SetOut(stdout)
	tc.SetErr(stderr)

	err := tc.Execute()

	return stdout.String(), stderr.String(), err
}

func containerPort(t *testing.T, obj *unstructured.Unstructured) int64 {
	t.Helper()

	containers, found, err := unstructured.NestedSlice(obj.Object, "spec", "containers")
	require.NoError(t, err)
	require.True(t, found)
	require.NotEmpty(t, containers)

	container, ok := containers[0].(map[string]any)
	require.True(t, ok)

	ports, found, err := unstructured.NestedSlice(container, "ports")
	require.NoError(t, err)
	require.True(t, found)
	require.NotEmpty(t, ports)

	port, ok := ports[0].(map[string]any)
	require.True(t, ok)

	n, ok := port["containerPort"].(int64)
	require.True(t, ok, "containerPort should be an integer, got %T", port["containerPort"])

	return n
}

func TestTranslateCmd_Pod(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := execute(t, "translate", filepath.Join(testDataDir, "pod.lua"))
	require.NoError(t, err)
	assert.Empty(t, stderr, "stderr should be empty")
	assert.NotContains(t, stdout, "---")
	assert.Contains(t, stdout, "kind: Pod\n")

	objs, err := testutil.SplitYAML([]byte(stdout))
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, "Pod", objs[0].GetKind())
	assert.Equal(t, "nginx", objs[0].GetName())
	assert.Equal(t, int64(80), containerPort(t, objs[0]))
}

func TestTranslateCmd_Globals(t *testing.T) {
	t.Parallel()

	script := filepath.Join(testDataDir, "template", "pod.lua")
	values := filepath.Join(testDataDir, "template", "values.lua")

	tcs := map[string]struct {
		args     []string
		wantName string
		wantPort int64
	}{
		"values file": {
			args:     []string{"translate", script, "-g", values},
			wantName: "web",
			wantPort: 8080,
		},
		"args override values file": {
			args:     []string{"translate", script, "--globals", values, "-a", "name=something", "-a", "port=42069"},
			wantName: "something",
			wantPort: 42069,
		},
		"args without values file": {
			args:     []string{"xlate", script, "--args", "name=api", "--args", "port=9000"},
			wantName: "api",
			wantPort: 9000,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t, tc.args...)
			require.NoError(t, err)

			objs, err := testutil.SplitYAML([]byte(stdout))
			require.NoError(t, err)
			require.Len(t, objs, 1)
			assert.Equal(t, tc.wantName, objs[0].GetName())
			assert.Equal(t, tc.wantPort, containerPort(t, objs[0]))
		})
	}
}

func TestTranslateCmd_Directory(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "translate", filepath.Join(testDataDir, "nginx-app"))
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count([]byte(stdout), []byte("---\n")))

	objs, err := testutil.SplitYAML([]byte(stdout))
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, "Service", objs[0].GetKind())
	assert.Equal(t, "my-nginx-svc", objs[0].GetName())
	assert.Equal(t, "Deployment", objs[1].GetKind())
	assert.Equal(t, map[string]string{"app": "nginx"}, objs[1].GetLabels())
}

func TestTranslateCmd_TwoContainerPod(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "translate", filepath.Join(testDataDir, "two-container-pod.lua"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "emptyDir: {}\n")

	objs, err := testutil.SplitYAML([]byte(stdout))
	require.NoError(t, err)
	require.Len(t, objs, 1)

	containers, found, err := unstructured.NestedSlice(objs[0].Object, "spec", "containers")
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, containers, 2)

	volumes, found, err := unstructured.NestedSlice(objs[0].Object, "spec", "volumes")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, volumes, 1)

	volume, ok := volumes[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{}, volume["emptyDir"])
}

func TestTranslateCmd_Errors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		args    []string
		wantErr error
	}{
		"arg without equals": {
			args:    []string{"translate", filepath.Join(testDataDir, "pod.lua"), "-a", "name"},
			wantErr: kluarserrors.ErrConfiguration,
		},
		"missing script": {
			args:    []string{"translate", filepath.Join(testDataDir, "missing.lua")},
			wantErr: kluarserrors.ErrConfiguration,
		},
		"directory without init.lua": {
			args:    []string{"translate", filepath.Join(testDataDir, "template")},
			wantErr: kluarserrors.ErrConfiguration,
		},
		"unknown log level": {
			args:    []string{"translate", filepath.Join(testDataDir, "pod.lua"), "--log_level", "loud"},
			wantErr: kluarserrors.ErrConfiguration,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t, tc.args...)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, stdout)
		})
	}
}

func TestTranslateCmd_RequiresPath(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "translate")
	require.Error(t, err)
}

func TestApplyCmd_BadKubeconfig(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "apply", filepath.Join(testDataDir, "pod.lua"),
		"--kubeconfig", filepath.Join(testDataDir, "missing-kubeconfig"),
		"-n", "default",
	)
	require.ErrorIs(t, err, kluarserrors.ErrConfiguration)
	assert.Contains(t, err.Error(), "kubeconfig")
}

func TestApplyCmd_BadArgs(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "apply", filepath.Join(testDataDir, "pod.lua"), "-a", "oops")
	require.ErrorIs(t, err, kluarserrors.ErrConfiguration)
}
