package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/dommiloo/dlist/config"
	"github.com/dommiloo/dlist/dlist"
	"github.com/dommiloo/dlist/errors"
	"github.com/dommiloo/dlist/log"
	"github.com/dommiloo/dlist/metrics"
	"github.com/dommiloo/dlist/util"
)

func main() {
	var (
		logLevelFlag string
		logJSON      bool
		logNoColor   bool

		port string
	)

	rootCmd := &cobra.Command{
		Use:   "dlist",
		Short: "Doubly linked list server",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logLevel, err := zerolog.ParseLevel(logLevelFlag)
			if err != nil {
				log.InitGlobals(0, logJSON, true).Fatal().Msg("Unknown log level")
			}

			lg := log.InitGlobals(logLevel, logJSON, logNoColor)
			ctx := lg.WithContext(context.Background())
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Check if this is the root command being executed without a subcommand
			if cmd.CalledAs() != "dlist" || cmd.ArgsLenAtDash() != -1 {
				return nil
			}

			return runServer(cmd.Context(), port)
		},
	}

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	addLogFlags(rootCmd.PersistentFlags(), &logLevelFlag, &logJSON, &logNoColor)
	rootCmd.PersistentFlags().StringVar(&port, "port", config.Port(), "Port number")

	pushFrontCmd := &cobra.Command{
		Use:   "push-front <value>...",
		Short: "Push values at the front of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args)
			if err != nil {
				return err
			}

			return NewClient(port).PushFront(cmd.Context(), values)
		},
	}

	pushBackCmd := &cobra.Command{
		Use:   "push-back <value>...",
		Short: "Push values at the back of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args)
			if err != nil {
				return err
			}

			return NewClient(port).PushBack(cmd.Context(), values)
		},
	}

	popFrontCmd := &cobra.Command{
		Use:   "pop-front",
		Short: "Pop the front value of the list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return NewClient(port).PopFront(cmd.Context())
		},
	}

	popBackCmd := &cobra.Command{
		Use:   "pop-back",
		Short: "Pop the back value of the list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return NewClient(port).PopBack(cmd.Context())
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Get the status of the list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return NewClient(port).Status(cmd.Context())
		},
	}

	printCmd := &cobra.Command{
		Use:   "print",
		Short: "Print the list traversal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reverse, err := cmd.Flags().GetBool("reverse")
			if err != nil {
				return err //nolint:wrapcheck
			}

			return NewClient(port).Print(cmd.Context(), reverse)
		},
	}

	printCmd.Flags().Bool("reverse", false, "Print the tail-to-head traversal")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the list walkthrough locally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.Context())
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure push and pop throughput locally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, err := cmd.Flags().GetInt("count")
			if err != nil {
				return err //nolint:wrapcheck
			}

			return runBench(cmd.Context(), count)
		},
	}

	benchCmd.Flags().Int("count", config.BenchCount(), "Number of values to push and pop")

	rootCmd.AddCommand(
		pushFrontCmd, pushBackCmd,
		popFrontCmd, popBackCmd,
		statusCmd, printCmd,
		demoCmd, benchCmd,
	)

	err := rootCmd.Execute()
	if err != nil {
		zerolog.Ctx(context.Background()).Fatal().Err(err).Msg("")
	}
}

// addLogFlags registers the shared logging flags on fs.
func addLogFlags(fs *pflag.FlagSet, level *string, json, noColor *bool) {
	fs.StringVar(level, "log-level", "info", "Log level")
	fs.BoolVar(json, "log-json", false, "Output log in JSON format")
	fs.BoolVar(noColor, "no-color", false, "Disable log color")
}

// parseValues converts command arguments to integers.
func parseValues(args []string) ([]int, error) {
	values := make([]int, len(args))

	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid value %q", arg)
		}

		values[i] = v
	}

	return values, nil
}

// runServer starts the HTTP server with the provided configuration.
func runServer(ctx context.Context, port string) error {
	addr, err := buildServerAddr(port)
	if err != nil {
		return errors.Wrap(err, "build server address")
	}

	reg := prometheus.NewRegistry()
	metrics.Init(reg)

	srv := newServer(reg)

	httpServer := http.Server{
		Addr:    addr,
		Handler: srv.Handler(),

		ReadTimeout:       config.ServerReadTimeout,
		ReadHeaderTimeout: config.ServerReadHeaderTimeout,
	}

	grp, grpCtx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		log.Ctx(ctx).Info("Starting server at http://" + addr)

		err := httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return errors.Wrap(err, "listen")
	})

	grp.Go(func() error {
		sigCtx, stop := signal.NotifyContext(grpCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		<-sigCtx.Done()

		log.Ctx(ctx).Info("Shutting down")

		err := util.CtxWithTimeout(context.Background(), config.ServerShutdownTimeout,
			httpServer.Shutdown)

		return errors.Wrap(err, "shutdown")
	})

	return grp.Wait() //nolint:wrapcheck
}

var errUnsupportedPortRange = errors.Errorf(
	"port value is outside the supported range [%d - %d]", config.MinPort, config.MaxPort)

// buildServerAddr constructs the server address from the port.
func buildServerAddr(port string) (string, error) {
	i, err := strconv.ParseInt(port, 10, 32)
	if err != nil {
		return "", errors.Wrap(err, "invalid port value format")
	}

	if i < config.MinPort || i > config.MaxPort {
		return "", errUnsupportedPortRange
	}

	return "localhost:" + port, nil
}

// server owns the list and serializes access to it. The list itself is
// single-threaded; the server is the caller that imposes the required
// external mutual exclusion.
type server struct {
	mu   sync.Mutex
	list *dlist.List

	metricsHandler http.Handler
}

// newServer creates a server with an empty list, registering its
// metrics endpoint against reg.
func newServer(reg *prometheus.Registry) *server {
	return &server{
		list:           &dlist.List{},
		metricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
}

// Handler returns the HTTP handler for the server.
func (s *server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/print", s.handlePrint)
	mux.HandleFunc("/push-front", s.handlePushFront)
	mux.HandleFunc("/push-back", s.handlePushBack)
	mux.HandleFunc("/pop-front", s.handlePopFront)
	mux.HandleFunc("/pop-back", s.handlePopBack)
	mux.Handle("/metrics", s.metricsHandler)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.New("http").Info(r.Method + " " + r.URL.String())
		mux.ServeHTTP(w, r)
	})
}

// handleStatus handles the /status endpoint.
func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if !checkRequest(w, r, http.MethodGet) {
		return
	}

	s.mu.Lock()
	res := statusResponse{
		Ok:    true,
		Size:  s.list.Len(),
		Empty: s.list.Empty(),
	}

	if front, ok := s.list.Front(); ok {
		res.Front = &front
	}

	if back, ok := s.list.Back(); ok {
		res.Back = &back
	}
	s.mu.Unlock()

	writeResponse(w, res)
}

// handlePrint handles the /print endpoint. With reverse=1 it emits the
// tail-to-head traversal.
func (s *server) handlePrint(w http.ResponseWriter, r *http.Request) {
	if !checkRequest(w, r, http.MethodGet) {
		return
	}

	reverse := r.URL.Query().Get("reverse") == "1"

	var buf bytes.Buffer

	s.mu.Lock()
	if reverse {
		_ = s.list.FprintBackward(&buf)
	} else {
		_ = s.list.Fprint(&buf)
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	_, err := w.Write(buf.Bytes())
	if err != nil {
		log.New("http").Error(err, "write print response")
	}
}

// handlePushFront handles the /push-front endpoint.
func (s *server) handlePushFront(w http.ResponseWriter, r *http.Request) {
	s.handlePush(w, r, true)
}

// handlePushBack handles the /push-back endpoint.
func (s *server) handlePushBack(w http.ResponseWriter, r *http.Request) {
	s.handlePush(w, r, false)
}

func (s *server) handlePush(w http.ResponseWriter, r *http.Request, front bool) {
	if !checkRequest(w, r, http.MethodPost) {
		return
	}

	var params pushRequest

	err := json.NewDecoder(r.Body).Decode(&params)
	if err != nil {
		http.Error(w,
			http.StatusText(http.StatusBadRequest),
			http.StatusBadRequest)

		return
	}

	s.mu.Lock()
	if front {
		s.list.PushFront(params.Value)
		metrics.IncPushFront()
	} else {
		s.list.PushBack(params.Value)
		metrics.IncPushBack()
	}

	size := s.list.Len()
	metrics.SetListLength(size)
	s.mu.Unlock()

	writeResponse(w, pushResponse{Ok: true, Size: size})
}

// handlePopFront handles the /pop-front endpoint.
func (s *server) handlePopFront(w http.ResponseWriter, r *http.Request) {
	s.handlePop(w, r, true)
}

// handlePopBack handles the /pop-back endpoint.
func (s *server) handlePopBack(w http.ResponseWriter, r *http.Request) {
	s.handlePop(w, r, false)
}

func (s *server) handlePop(w http.ResponseWriter, r *http.Request, front bool) {
	if !checkRequest(w, r, http.MethodPost) {
		return
	}

	var (
		value int
		err   error
	)

	s.mu.Lock()
	if front {
		value, err = s.list.PopFront()
	} else {
		value, err = s.list.PopBack()
	}

	size := s.list.Len()

	if err == nil {
		if front {
			metrics.IncPopFront()
		} else {
			metrics.IncPopBack()
		}

		metrics.SetListLength(size)
	} else if dlist.IsUnderflow(err) {
		metrics.IncUnderflow()
	}
	s.mu.Unlock()

	// Underflow is a domain outcome, not a transport failure: the
	// response stays HTTP 200 with ok=false.
	res := popResponse{Ok: err == nil, Size: size}
	if err != nil {
		res.Err = err.Error()
	} else {
		res.Value = &value
	}

	writeResponse(w, res)
}

// checkRequest enforces the method and request size limits shared by
// all endpoints.
func checkRequest(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w,
			http.StatusText(http.StatusMethodNotAllowed),
			http.StatusMethodNotAllowed)

		return false
	}

	if r.ContentLength > config.MaxRequestSize {
		http.Error(w,
			http.StatusText(http.StatusRequestEntityTooLarge),
			http.StatusRequestEntityTooLarge)

		return false
	}

	return true
}

func writeResponse(w http.ResponseWriter, res any) {
	err := json.NewEncoder(w).Encode(res)
	if err != nil {
		log.New("http").Error(err, "write response")
		http.Error(w,
			http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError)
	}
}

// pushRequest represents the request body for the push endpoints.
type pushRequest struct {
	// Value is the integer to insert.
	Value int `json:"value"`
}

// pushResponse represents the response body for the push endpoints.
type pushResponse struct {
	// Ok indicates if the operation was successful.
	Ok bool `json:"ok"`
	// Err is the error message if the operation failed.
	Err string `json:"error,omitempty"`
	// Size is the list size after the operation.
	Size int `json:"size"`
}

// popResponse represents the response body for the pop endpoints.
type popResponse struct {
	// Ok indicates if the operation was successful.
	Ok bool `json:"ok"`
	// Err is the error message if the operation failed.
	Err string `json:"error,omitempty"`
	// Value is the removed value on success.
	Value *int `json:"value,omitempty"`
	// Size is the list size after the operation.
	Size int `json:"size"`
}

// statusResponse represents the response body for the /status endpoint.
type statusResponse struct {
	// Ok indicates if the operation was successful.
	Ok bool `json:"ok"`
	// Err is the error message if the operation failed.
	Err string `json:"error,omitempty"`

	// Size is the number of values in the list.
	Size int `json:"size"`
	// Empty indicates if the list holds no values.
	Empty bool `json:"empty"`
	// Front is the first value, when present.
	Front *int `json:"front,omitempty"`
	// Back is the last value, when present.
	Back *int `json:"back,omitempty"`
}

// ListClient is a thin HTTP client for the list server.
type ListClient struct {
	port string
}

// NewClient creates a client for the server listening on port.
func NewClient(port string) ListClient {
	return ListClient{port: port}
}

// PushFront sends a request per value to insert at the front.
func (c ListClient) PushFront(ctx context.Context, values []int) error {
	for _, v := range values {
		err := doClientRequest[pushResponse](ctx, c.port, http.MethodPost,
			"push-front", pushRequest{Value: v})
		if err != nil {
			return err
		}
	}

	return nil
}

// PushBack sends a request per value to insert at the back.
func (c ListClient) PushBack(ctx context.Context, values []int) error {
	for _, v := range values {
		err := doClientRequest[pushResponse](ctx, c.port, http.MethodPost,
			"push-back", pushRequest{Value: v})
		if err != nil {
			return err
		}
	}

	return nil
}

// PopFront sends a request to remove the front value.
func (c ListClient) PopFront(ctx context.Context) error {
	return doClientRequest[popResponse](ctx, c.port, http.MethodPost, "pop-front", nil)
}

// PopBack sends a request to remove the back value.
func (c ListClient) PopBack(ctx context.Context) error {
	return doClientRequest[popResponse](ctx, c.port, http.MethodPost, "pop-back", nil)
}

// Status sends a request to get the status of the list.
func (c ListClient) Status(ctx context.Context) error {
	return doClientRequest[statusResponse](ctx, c.port, http.MethodGet, "status", nil)
}

// Print fetches the traversal text and writes it to standard output.
func (c ListClient) Print(ctx context.Context, reverse bool) error {
	path := "print"
	if reverse {
		path = "print?reverse=1"
	}

	url := fmt.Sprintf("http://localhost:%s/%s", c.port, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request")
	}
	defer res.Body.Close()

	_, err = io.Copy(os.Stdout, res.Body)

	return errors.Wrap(err, "print response")
}

func doClientRequest[T any](ctx context.Context, port, method, path string, options any) error {
	url := fmt.Sprintf("http://localhost:%s/%s", port, path)

	data := []byte("")
	if options != nil {
		var err error
		data, err = json.Marshal(options)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	log.Ctx(ctx).Debugf("%s /%s %s", method, path, string(data))

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request")
	}
	defer res.Body.Close()

	var resp T

	err = json.NewDecoder(res.Body).Decode(&resp)
	if err != nil {
		return errors.Wrap(err, "decode response")
	}

	j := json.NewEncoder(os.Stdout)
	j.SetIndent("", "  ")
	err = j.Encode(resp)

	return errors.Wrap(err, "print response")
}

// runDemo walks through the list operations on a local list, printing
// its state after each step.
func runDemo(_ context.Context) error {
	list := &dlist.List{}
	defer list.Clear()

	fmt.Println("Pushing 3, 2, 1 at the front...")
	list.PushFront(3)
	list.PushFront(2)
	list.PushFront(1)
	list.Print()
	list.PrintBackward()

	fmt.Println("\nPushing 4, 5 at the back...")
	list.PushBack(4)
	list.PushBack(5)
	list.Print()
	list.PrintBackward()

	front, err := list.PopFront()
	if err != nil {
		return errors.Wrap(err, "pop front")
	}

	fmt.Printf("\nPopping front:  %d\n", front)

	back, err := list.PopBack()
	if err != nil {
		return errors.Wrap(err, "pop back")
	}

	fmt.Printf("Popping back:   %d\n", back)
	list.Print()

	fmt.Printf("\nSize now: %d\n", list.Len())

	return nil
}

// runBench pushes count values at the back of a local list and pops
// them back from the front, reporting durations and heap growth.
func runBench(ctx context.Context, count int) error {
	lg := log.Ctx(ctx)

	var before, after runtime.MemStats

	runtime.ReadMemStats(&before)

	list := &dlist.List{}

	start := time.Now()

	for i := 1; i <= count; i++ {
		list.PushBack(i)
	}

	pushDur := time.Since(start)

	runtime.ReadMemStats(&after)

	heapGrowth := uint64(0)
	if after.HeapAlloc > before.HeapAlloc {
		heapGrowth = after.HeapAlloc - before.HeapAlloc
	}

	lg.Infof("Pushed %s values in %s (heap grew by %s)",
		humanize.Comma(int64(count)),
		pushDur.Round(time.Microsecond),
		humanize.Bytes(heapGrowth))

	start = time.Now()

	for range count {
		_, err := list.PopFront()
		if err != nil {
			return errors.Wrap(err, "pop front")
		}
	}

	popDur := time.Since(start)

	lg.Infof("Popped %s values in %s",
		humanize.Comma(int64(count)),
		popDur.Round(time.Microsecond))

	if !list.Empty() {
		return errors.New("list is not empty after bench")
	}

	return nil
}
