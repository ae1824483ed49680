package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
)

// ManageNode handles local development node operations
type ManageNode struct {
	config   *config.RuntimeConfig
	manager  NodeManager
	progress ProgressSink
}

// NewManageNode creates a new node management use case
func NewManageNode(cfg *config.RuntimeConfig, manager NodeManager, progress ProgressSink) *ManageNode {
	return &ManageNode{
		config:   cfg,
		manager:  manager,
		progress: progress,
	}
}

// ManageNodeParams contains parameters for node operations
type ManageNodeParams struct {
	Operation string // start, stop, restart, status, logs
	Port      string // overrides [node] port
}

// ManageNodeResult contains the result of node operations
type ManageNodeResult struct {
	Operation string
	Instance  *domain.NodeInstance
	Status    *domain.NodeStatus
	Message   string
}

// Run performs the node management operation
func (m *ManageNode) Run(ctx context.Context, params ManageNodeParams) (*ManageNodeResult, error) {
	instance := m.instance(params)

	switch params.Operation {
	case "start":
		return m.start(ctx, instance)
	case "stop":
		return m.stop(ctx, instance)
	case "restart":
		if _, err := m.stop(ctx, instance); err != nil {
			return nil, err
		}
		result, err := m.start(ctx, instance)
		if err != nil {
			return nil, err
		}
		result.Operation = "restart"
		return result, nil
	case "status", "logs":
		status, err := m.manager.GetStatus(ctx, instance)
		if err != nil {
			return nil, fmt.Errorf("failed to get status: %w", err)
		}
		return &ManageNodeResult{
			Operation: params.Operation,
			Instance:  instance,
			Status:    status,
		}, nil
	default:
		return nil, fmt.Errorf("unknown operation: %s", params.Operation)
	}
}

// StreamLogs follows the node log until ctx is cancelled
func (m *ManageNode) StreamLogs(ctx context.Context, instance *domain.NodeInstance, w io.Writer) error {
	return m.manager.StreamLogs(ctx, instance, w)
}

func (m *ManageNode) instance(params ManageNodeParams) *domain.NodeInstance {
	node := m.config.Project.Node
	port := node.Port
	if params.Port != "" {
		port = params.Port
	}
	return &domain.NodeInstance{
		Command: node.Command,
		Port:    port,
		ChainID: node.ChainID,
		Args:    node.Args,
		PidFile: filepath.Join(m.config.DataDir, fmt.Sprintf("node-%s.pid", port)),
		LogFile: filepath.Join(m.config.DataDir, fmt.Sprintf("node-%s.log", port)),
	}
}

func (m *ManageNode) start(ctx context.Context, instance *domain.NodeInstance) (*ManageNodeResult, error) {
	m.progress.Info(fmt.Sprintf("Starting %s on port %s...", instance.Command, instance.Port))

	status, err := m.manager.GetStatus(ctx, instance)
	if err == nil && status.Running {
		return nil, fmt.Errorf("node is already running on port %s (PID %d)", instance.Port, status.PID)
	}

	if err := m.manager.Start(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to start node: %w", err)
	}

	status, err = m.manager.GetStatus(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get status after start: %w", err)
	}

	return &ManageNodeResult{
		Operation: "start",
		Instance:  instance,
		Status:    status,
		Message:   fmt.Sprintf("Node started with PID %d", status.PID),
	}, nil
}

func (m *ManageNode) stop(ctx context.Context, instance *domain.NodeInstance) (*ManageNodeResult, error) {
	status, err := m.manager.GetStatus(ctx, instance)
	if err != nil || !status.Running {
		return &ManageNodeResult{
			Operation: "stop",
			Instance:  instance,
			Message:   "Node is not running",
		}, nil
	}

	m.progress.Info(fmt.Sprintf("Stopping node (PID %d)...", status.PID))
	if err := m.manager.Stop(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to stop node: %w", err)
	}

	return &ManageNodeResult{
		Operation: "stop",
		Instance:  instance,
		Message:   "Node stopped",
	}, nil
}
