package render

import (
	"fmt"
	"io"

	"github.com/scam-ico/scam-ico/internal/usecase"
)

// NodeRenderer renders development node operation results
type NodeRenderer struct {
	out io.Writer
}

// NewNodeRenderer creates a new node renderer
func NewNodeRenderer(out io.Writer) *NodeRenderer {
	return &NodeRenderer{out: out}
}

// Render renders the node operation result
func (r *NodeRenderer) Render(result *usecase.ManageNodeResult) error {
	switch result.Operation {
	case "start", "restart":
		return r.renderStart(result)
	case "stop":
		return r.renderStop(result)
	case "status":
		return r.renderStatus(result)
	case "logs":
		return r.RenderLogsHeader(result)
	default:
		return fmt.Errorf("unknown operation: %s", result.Operation)
	}
}

func (r *NodeRenderer) renderStart(result *usecase.ManageNodeResult) error {
	fmt.Fprintln(r.out, FormatSuccess(result.Message))
	warningStyle.Fprintf(r.out, "📋 Logs: %s\n", result.Status.LogFile)
	highlightStyle.Fprintf(r.out, "🌐 RPC URL: %s\n", result.Status.RPCURL)
	if !result.Status.RPCHealthy {
		fmt.Fprintln(r.out, FormatWarning("RPC is not responding yet"))
	}
	return nil
}

func (r *NodeRenderer) renderStop(result *usecase.ManageNodeResult) error {
	if result.Status == nil && result.Message == "Node is not running" {
		fmt.Fprintln(r.out, FormatWarning(result.Message))
		return nil
	}
	fmt.Fprintln(r.out, FormatSuccess(result.Message))
	return nil
}

func (r *NodeRenderer) renderStatus(result *usecase.ManageNodeResult) error {
	headerStyle.Fprintf(r.out, "📊 Node Status (port %s):\n", result.Instance.Port)

	status := result.Status
	if !status.Running {
		errorStyle.Fprintln(r.out, "Status: 🔴 Not running")
		labelStyle.Fprintf(r.out, "PID file: %s\n", result.Instance.PidFile)
		labelStyle.Fprintf(r.out, "Log file: %s\n", result.Instance.LogFile)
		return nil
	}

	successStyle.Fprintf(r.out, "Status: 🟢 Running (PID %d)\n", status.PID)
	highlightStyle.Fprintf(r.out, "RPC URL: %s\n", status.RPCURL)
	warningStyle.Fprintf(r.out, "Log file: %s\n", status.LogFile)
	if status.RPCHealthy {
		successStyle.Fprintf(r.out, "RPC Health: ✅ Responding (chain %d)\n", status.ChainID)
	} else {
		errorStyle.Fprintln(r.out, "RPC Health: ❌ Not responding")
	}
	return nil
}

// RenderLogsHeader renders the header shown before streaming logs
func (r *NodeRenderer) RenderLogsHeader(result *usecase.ManageNodeResult) error {
	headerStyle.Fprintf(r.out, "📋 Showing node logs on port %s (Ctrl+C to exit):\n", result.Instance.Port)
	labelStyle.Fprintf(r.out, "Log file: %s\n\n", result.Instance.LogFile)
	return nil
}
