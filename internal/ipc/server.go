package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"
	"time"

	"adscribe/internal/api"
	"adscribe/internal/daemon"
	"adscribe/internal/logging"
	"adscribe/internal/logs"
	"adscribe/internal/preflight"
)

// serviceName is the JSON-RPC receiver name clients call methods on.
const serviceName = "Adscribe"

// maxLogTailWait bounds how long a single LogTail call may block in
// follow mode.
const maxLogTailWait = 30 * time.Second

// Server accepts IPC connections on a unix socket and dispatches RPCs to
// the daemon.
type Server struct {
	path   string
	logger *slog.Logger

	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer binds the unix socket at path and registers the daemon RPC
// service. Call Serve to begin accepting connections.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires a daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", path, err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	srv := &Server{
		path:      path,
		logger:    logging.NewComponentLogger(logger, "ipc"),
		listener:  listener,
		rpcServer: rpc.NewServer(),
		ctx:       serverCtx,
		cancel:    cancel,
	}
	if err := srv.rpcServer.RegisterName(serviceName, &service{daemon: d, ctx: serverCtx}); err != nil {
		cancel()
		_ = listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}
	return srv, nil
}

// Serve starts the accept loop in a background goroutine.
func (s *Server) Serve() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
				default:
					s.logger.Warn("ipc accept failed", logging.Error(err))
				}
				return
			}
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(conn))
			}()
		}
	}()
	s.logger.Info("ipc server listening", logging.String("socket", s.path))
}

// Close stops accepting connections and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("remove ipc socket", logging.Error(err))
	}
}

// service implements the RPC surface. Methods follow net/rpc conventions:
// exported, two args, error return.
type service struct {
	daemon *daemon.Daemon
	ctx    context.Context
}

func (s *service) Start(_ StartRequest, resp *StartResponse) error {
	if err := s.daemon.Start(s.ctx); err != nil {
		resp.Started = false
		resp.Message = err.Error()
		return nil
	}
	resp.Started = true
	resp.Message = "daemon processing started"
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.daemon.Stop()
	resp.Stopped = true
	resp.Message = "daemon processing stopped"
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status(s.ctx)
	wf := api.FromStatusSummary(status.Workflow)

	resp.Running = status.Running
	resp.PID = status.PID
	resp.QueueStats = wf.QueueStats
	resp.LastError = wf.LastError
	resp.LastItem = wf.LastItem
	resp.StageHealth = wf.StageHealth
	resp.LockPath = status.LockFilePath
	resp.QueueDBPath = status.QueueDBPath
	resp.LogPath = s.daemon.LogPath()

	checks := preflight.CheckSystemDeps(s.ctx, s.daemon.Config())
	resp.Dependencies = make([]api.DependencyStatus, len(checks))
	for i, dep := range checks {
		severity := "ok"
		if !dep.Available {
			severity = "error"
			if dep.Optional {
				severity = "warn"
			}
		}
		resp.Dependencies[i] = api.DependencyStatus{
			Name:        dep.Name,
			Command:     dep.Command,
			Description: dep.Description,
			Optional:    dep.Optional,
			Available:   dep.Available,
			Detail:      dep.Detail,
			Severity:    severity,
		}
	}
	return nil
}

func (s *service) Analyze(req AnalyzeRequest, resp *AnalyzeResponse) error {
	item, err := s.daemon.AddAnalysis(s.ctx, req.PageRef, req.Language)
	if err != nil {
		return err
	}
	resp.Item = api.FromQueueItem(item)
	return nil
}

func (s *service) QueueList(req QueueListRequest, resp *QueueListResponse) error {
	statuses, err := api.ParseStatuses(req.Statuses)
	if err != nil {
		return err
	}
	items, err := s.daemon.ListQueue(s.ctx, statuses)
	if err != nil {
		return err
	}
	resp.Items = api.FromQueueItems(items)
	return nil
}

func (s *service) QueueDescribe(req QueueDescribeRequest, resp *QueueDescribeResponse) error {
	item, err := s.daemon.DescribeItem(s.ctx, req.ID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("queue item %d not found", req.ID)
	}
	resp.Item = api.FromQueueItem(item)
	return nil
}

func (s *service) QueueStop(req QueueStopRequest, resp *QueueStopResponse) error {
	item, err := s.daemon.StopItem(s.ctx, req.ID)
	if err != nil {
		return err
	}
	resp.Item = api.FromQueueItem(item)
	return nil
}

func (s *service) QueueRemove(req QueueRemoveRequest, resp *QueueRemoveResponse) error {
	removed, err := s.daemon.RemoveItem(s.ctx, req.ID)
	if err != nil {
		return err
	}
	resp.Removed = removed
	return nil
}

func (s *service) QueueClear(_ QueueClearRequest, resp *QueueClearResponse) error {
	removed, err := s.daemon.ClearQueue(s.ctx)
	if err != nil {
		return err
	}
	resp.Removed = removed
	return nil
}

func (s *service) QueueClearCompleted(_ QueueClearCompletedRequest, resp *QueueClearCompletedResponse) error {
	removed, err := s.daemon.ClearCompleted(s.ctx)
	if err != nil {
		return err
	}
	resp.Removed = removed
	return nil
}

func (s *service) QueueClearFailed(_ QueueClearFailedRequest, resp *QueueClearFailedResponse) error {
	removed, err := s.daemon.ClearFailed(s.ctx)
	if err != nil {
		return err
	}
	resp.Removed = removed
	return nil
}

func (s *service) QueueReset(_ QueueResetRequest, resp *QueueResetResponse) error {
	reset, err := s.daemon.ResetStuck(s.ctx)
	if err != nil {
		return err
	}
	resp.Reset = reset
	return nil
}

func (s *service) QueueRetry(req QueueRetryRequest, resp *QueueRetryResponse) error {
	retried, err := s.daemon.RetryFailed(s.ctx, req.IDs)
	if err != nil {
		return err
	}
	resp.Retried = retried
	return nil
}

func (s *service) QueueHealth(_ QueueHealthRequest, resp *QueueHealthResponse) error {
	health, err := s.daemon.QueueHealth(s.ctx)
	if err != nil {
		return err
	}
	resp.Total = health.Total
	resp.Pending = health.Pending
	resp.Processing = health.Processing
	resp.Failed = health.Failed
	resp.Review = health.Review
	resp.Completed = health.Completed
	return nil
}

func (s *service) DatabaseHealth(_ DatabaseHealthRequest, resp *DatabaseHealthResponse) error {
	health, err := s.daemon.DatabaseHealth(s.ctx)
	if err != nil {
		return err
	}
	resp.DBPath = health.DBPath
	resp.DatabaseExists = health.DatabaseExists
	resp.DatabaseReadable = health.DatabaseReadable
	resp.SchemaVersion = health.SchemaVersion
	resp.TableExists = health.TableExists
	resp.ColumnsPresent = health.ColumnsPresent
	resp.MissingColumns = health.MissingColumns
	resp.IntegrityCheck = health.IntegrityCheck
	resp.TotalItems = health.TotalItems
	resp.Error = health.Error
	return nil
}

func (s *service) LogTail(req LogTailRequest, resp *LogTailResponse) error {
	wait := time.Duration(req.WaitMillis) * time.Millisecond
	if wait > maxLogTailWait {
		wait = maxLogTailWait
	}
	logPath := s.daemon.LogPath()
	result, err := logs.Tail(s.ctx, logPath, logs.TailOptions{
		Offset: req.Offset,
		Limit:  req.Limit,
		Follow: req.Follow,
		Wait:   wait,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	resp.Lines = result.Lines
	resp.Offset = result.Offset
	resp.LogPath = logPath
	return nil
}

func (s *service) TestNotification(_ TestNotificationRequest, resp *TestNotificationResponse) error {
	sent, message, err := s.daemon.TestNotification(s.ctx)
	if err != nil {
		return err
	}
	resp.Sent = sent
	resp.Message = message
	return nil
}
