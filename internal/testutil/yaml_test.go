package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/kluars/pkg/kluarserrors"
	"github.com/MacroPower/kluars/internal/testutil"
)

const deploymentObject = `
apiVersion: apps/v1
kind: Deployment
metadata:
  name: nginx-deployment
  labels:
    foo: bar
spec:
  template:
    metadata:
      labels:
        app: nginx
    spec:
      containers:
      - image: nginx:1.7.9
        name: nginx
        ports:
        - containerPort: 80
`

const serviceObject = `
apiVersion: v1
kind: Service
metadata:
  name: my-nginx-svc
`

const invalidYAML = `
apiVersion: v1
	kind: Deployment
`

const invalidKubeResource = `
apiVersion: v1
kind: {foo: bar}
`

func TestSplitYAML_SingleObject(t *testing.T) {
	t.Parallel()

	objs, err := testutil.SplitYAML([]byte(deploymentObject))
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, "Deployment", objs[0].GetKind())
}

func TestSplitYAML_KeepsStreamOrder(t *testing.T) {
	t.Parallel()

	objs, err := testutil.SplitYAML([]byte("---\n" + serviceObject + "\n---\n" + deploymentObject))
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, "Service", objs[0].GetKind())
	assert.Equal(t, "Deployment", objs[1].GetKind())
}

func TestSplitYAML_TrailingNewLines(t *testing.T) {
	t.Parallel()

	objs, err := testutil.SplitYAML([]byte("\n\n\n---" + deploymentObject))
	require.NoError(t, err)
	assert.Len(t, objs, 1)
}

func TestSplitYAML_Empty(t *testing.T) {
	t.Parallel()

	objs, err := testutil.SplitYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, objs)
}

func TestSplitYAML_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := testutil.SplitYAML([]byte(invalidYAML))
	require.ErrorIs(t, err, kluarserrors.ErrShape)
	assert.Contains(t, err.Error(), "invalid yaml")
}

func TestSplitYAML_InvalidKubeResource(t *testing.T) {
	t.Parallel()

	objs, err := testutil.SplitYAML([]byte(serviceObject + "\n---\n" + invalidKubeResource))
	require.ErrorIs(t, err, kluarserrors.ErrShape)
	assert.Contains(t, err.Error(), "invalid kubernetes resource")
	assert.Len(t, objs, 1)
}
