package devnode

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/usecase"
)

// Manager runs the local development node as a background process
// tracked by a pid file
type Manager struct {
	// startupDelay is how long Start waits before checking the process
	startupDelay time.Duration
}

// NewManager creates a new node manager
func NewManager() *Manager {
	return &Manager{startupDelay: 300 * time.Millisecond}
}

// Start launches the node process with output redirected to its log file
func (m *Manager) Start(ctx context.Context, instance *domain.NodeInstance) error {
	if running, _ := isRunning(instance); running {
		return fmt.Errorf("node is already running (PID file exists at %s)", instance.PidFile)
	}

	if err := os.MkdirAll(filepath.Dir(instance.PidFile), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	logFile, err := os.Create(instance.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()

	// Not bound to ctx, the node outlives the command
	cmd := exec.Command(instance.Command, buildArgs(instance)...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", instance.Command, err)
	}

	if err := writePidFile(instance.PidFile, cmd.Process.Pid); err != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	// Detach so the process is not reaped with us
	_ = cmd.Process.Release()

	time.Sleep(m.startupDelay)
	if running, _ := isRunning(instance); !running {
		_ = os.Remove(instance.PidFile)
		return fmt.Errorf("%s exited right after starting, see %s", instance.Command, instance.LogFile)
	}
	return nil
}

// Stop terminates the node process and removes its pid file
func (m *Manager) Stop(ctx context.Context, instance *domain.NodeInstance) error {
	running, pid := isRunning(instance)
	if !running {
		_ = os.Remove(instance.PidFile)
		return nil
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		if err := process.Kill(); err != nil {
			return fmt.Errorf("failed to kill process: %w", err)
		}
	}

	// Wait for the process to go away, force kill after a timeout
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if process.Signal(syscall.Signal(0)) != nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if process.Signal(syscall.Signal(0)) == nil {
		_ = process.Kill()
	}

	if err := os.Remove(instance.PidFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// GetStatus reports whether the node runs and answers RPC requests
func (m *Manager) GetStatus(ctx context.Context, instance *domain.NodeInstance) (*domain.NodeStatus, error) {
	status := &domain.NodeStatus{
		RPCURL:  RPCURL(instance),
		LogFile: instance.LogFile,
	}

	running, pid := isRunning(instance)
	status.Running = running
	if running {
		status.PID = pid
	}

	chainID, err := checkRPCHealth(ctx, status.RPCURL)
	if err != nil {
		if running {
			status.Error = err.Error()
		}
		return status, nil
	}
	status.RPCHealthy = true
	status.ChainID = chainID
	return status, nil
}

// StreamLogs follows the node log file until ctx is cancelled
func (m *Manager) StreamLogs(ctx context.Context, instance *domain.NodeInstance, writer io.Writer) error {
	if _, err := os.Stat(instance.LogFile); os.IsNotExist(err) {
		return fmt.Errorf("log file does not exist: %s", instance.LogFile)
	}

	cmd := exec.CommandContext(ctx, "tail", "-n", "+1", "-f", instance.LogFile)
	cmd.Stdout = writer
	cmd.Stderr = writer
	if err := cmd.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to follow logs: %w", err)
	}
	return nil
}

// RPCURL returns the local RPC endpoint of the instance
func RPCURL(instance *domain.NodeInstance) string {
	return fmt.Sprintf("http://localhost:%s", instance.Port)
}

func buildArgs(instance *domain.NodeInstance) []string {
	args := []string{"--port", instance.Port, "--host", "0.0.0.0"}
	if instance.ChainID != "" {
		args = append(args, "--chain-id", instance.ChainID)
	}
	return append(args, instance.Args...)
}

func checkRPCHealth(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, err
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("RPC not responding: %w", err)
	}
	return chainID.Uint64(), nil
}

// isRunning checks the process named in the pid file
func isRunning(instance *domain.NodeInstance) (bool, int) {
	pid, err := readPidFile(instance.PidFile)
	if err != nil {
		return false, 0
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false, 0
	}
	if err := process.Signal(syscall.Signal(0)); err != nil {
		return false, 0
	}
	return true, pid
}

func readPidFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %s", string(data))
	}
	return pid, nil
}

func writePidFile(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)), 0644)
}

// Ensure the adapter implements the interface
var _ usecase.NodeManager = (*Manager)(nil)
