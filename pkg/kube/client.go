package kube

import (
	"fmt"

	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/MacroPower/kluars/pkg/kluarserrors"
)

const userAgent = "kluars"

// ClientOptions selects the kubeconfig and context to connect with.
type ClientOptions struct {
	// Kubeconfig overrides the default loading rules ($KUBECONFIG, then
	// ~/.kube/config) when set.
	Kubeconfig string
	// Context overrides the kubeconfig's current context when set.
	Context string
}

// Clients holds the cluster clients used by one run.
type Clients struct {
	Dynamic   dynamic.Interface
	Discovery discovery.DiscoveryInterface
	// Namespace is the default namespace of the selected context.
	Namespace string
}

// NewClients loads the kubeconfig and creates the cluster clients.
func NewClients(opts ClientOptions) (*Clients, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if opts.Kubeconfig != "" {
		rules.ExplicitPath = opts.Kubeconfig
	}

	overrides := &clientcmd.ConfigOverrides{CurrentContext: opts.Context}
	cc := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides)

	restCfg, err := cc.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("%w: kubeconfig: %w", kluarserrors.ErrConfiguration, err)
	}

	restCfg.UserAgent = userAgent

	ns, _, err := cc.Namespace()
	if err != nil {
		return nil, fmt.Errorf("%w: kubeconfig namespace: %w", kluarserrors.ErrConfiguration, err)
	}

	dyn, err := dynamic.NewForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: dynamic client: %w", kluarserrors.ErrConfiguration, err)
	}

	disc, err := discovery.NewDiscoveryClientForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: discovery client: %w", kluarserrors.ErrConfiguration, err)
	}

	return &Clients{
		Dynamic:   dyn,
		Discovery: disc,
		Namespace: ns,
	}, nil
}
