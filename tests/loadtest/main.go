package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numUsers     = 20
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== SID Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Users: %d\n\n", numWorkers, testDuration, numUsers)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Log in one session per simulated user up front.
	fmt.Print("Logging in users... ")
	tokens := make([]string, numUsers)
	for i := range tokens {
		token, err := login(fmt.Sprintf("loaduser_%d", i))
		if err != nil {
			fmt.Printf("FAILED: %s\n", err)
			return
		}
		tokens[i] = token
	}
	fmt.Println("OK")

	// Phase 1: Seed records with POST /execute
	fmt.Println("\n--- Phase 1: Seeding records (POST /execute) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doExecute(rng, tokens)
	})

	// Phase 2: Mixed read/write load
	fmt.Println("\n--- Phase 2: Mixed load (60% POST, 40% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.60:
			return doExecute(rng, tokens)
		case r < 0.75:
			return doGetRecords(rng, tokens)
		case r < 0.90:
			return doGetStats(rng, tokens)
		default:
			return doHeartbeat(rng, tokens)
		}
	})

	// Phase 3: Read-heavy load
	fmt.Println("\n--- Phase 3: Read-heavy load (10% POST, 90% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doExecute(rng, tokens)
		case r < 0.50:
			return doGetRecords(rng, tokens)
		case r < 0.85:
			return doGetStats(rng, tokens)
		default:
			return doExport(rng, tokens)
		}
	})
}

func login(userID string) (string, error) {
	data, _ := json.Marshal(map[string]string{"user_id": userID})
	resp, err := httpClient.Post(baseURL+"/login", "application/json", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("login returned %d", resp.StatusCode)
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	return payload.Token, nil
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

// makeText builds an input blob carrying a run of adjacent identifiers mixed
// with noise so every call passes the sequentiality filter.
func makeText(rng *rand.Rand) string {
	base := int64(10_000_000_000) + rng.Int63n(89_999_999_990)
	runLen := rng.Intn(3) + 2
	var buf bytes.Buffer
	buf.WriteString("scan batch:")
	for i := 0; i < runLen; i++ {
		fmt.Fprintf(&buf, " %d", base+int64(i))
	}
	if rng.Float64() < 0.3 {
		fmt.Fprintf(&buf, " noise %d end", rng.Int63n(9999))
	}
	return buf.String()
}

func authRequest(method, url, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func doAuthed(endpoint string, req *http.Request, wantStatus int) result {
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != wantStatus}
}

func doExecute(rng *rand.Rand, tokens []string) result {
	token := tokens[rng.Intn(len(tokens))]
	data, _ := json.Marshal(map[string]string{"text": makeText(rng)})
	req, err := authRequest(http.MethodPost, baseURL+"/execute", token, bytes.NewReader(data))
	if err != nil {
		return result{"POST /execute", 0, 0, true}
	}
	return doAuthed("POST /execute", req, 200)
}

func doGetRecords(rng *rand.Rand, tokens []string) result {
	token := tokens[rng.Intn(len(tokens))]
	url := baseURL + "/records"
	if rng.Float64() < 0.3 {
		url += "?digits=11"
	}
	req, err := authRequest(http.MethodGet, url, token, nil)
	if err != nil {
		return result{"GET /records", 0, 0, true}
	}
	return doAuthed("GET /records", req, 200)
}

func doGetStats(rng *rand.Rand, tokens []string) result {
	token := tokens[rng.Intn(len(tokens))]
	req, err := authRequest(http.MethodGet, baseURL+"/stats", token, nil)
	if err != nil {
		return result{"GET /stats", 0, 0, true}
	}
	return doAuthed("GET /stats", req, 200)
}

func doExport(rng *rand.Rand, tokens []string) result {
	token := tokens[rng.Intn(len(tokens))]
	req, err := authRequest(http.MethodGet, baseURL+"/export", token, nil)
	if err != nil {
		return result{"GET /export", 0, 0, true}
	}
	return doAuthed("GET /export", req, 200)
}

func doHeartbeat(rng *rand.Rand, tokens []string) result {
	token := tokens[rng.Intn(len(tokens))]
	req, err := authRequest(http.MethodPost, baseURL+"/heartbeat", token, nil)
	if err != nil {
		return result{"POST /heartbeat", 0, 0, true}
	}
	return doAuthed("POST /heartbeat", req, 204)
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
