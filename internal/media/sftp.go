package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"wp2strapi/internal/concurrency"
	"wp2strapi/internal/logging"
)

type Config struct {
	Host                  string
	Port                  int
	User                  string
	Pass                  string
	KeyFile               string
	RemoteDir             string
	InsecureIgnoreHostKey bool
	KnownHostsFile        string
	// Workers is the number of parallel file transfers.
	Workers int
}

// Uploader writes files below RemoteDir on an SFTP server.
type Uploader struct {
	client    *sftp.Client
	conn      io.Closer
	remoteDir string
	workers   int
	log       logging.Logger
}

// Dial opens an SSH connection and an SFTP session on it.
func Dial(ctx context.Context, cfg Config, log logging.Logger) (*Uploader, error) {
	if cfg.Host == "" || cfg.User == "" || (cfg.Pass == "" && cfg.KeyFile == "") {
		return nil, errors.New("media: missing SFTP_HOST / SFTP_USER / SFTP_PASS or SFTP_KEY_FILE")
	}
	if cfg.Port <= 0 {
		cfg.Port = 22
	}

	auth, err := authMethods(cfg)
	if err != nil {
		return nil, err
	}
	hostKey, err := hostKeyCallback(cfg)
	if err != nil {
		return nil, err
	}

	sshCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            auth,
		HostKeyCallback: hostKey,
		Timeout:         20 * time.Second,
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshCfg)
		ch <- dialRes{client: c, err: err}
	}()

	var sshClient *ssh.Client
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("media: dial %s canceled: %w", addr, ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("media: dial %s: %w", addr, r.err)
		}
		sshClient = r.client
	}

	sftpCli, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, fmt.Errorf("media: sftp session: %w", err)
	}

	u := NewUploader(sftpCli, cfg.RemoteDir, log)
	u.conn = sshClient
	if cfg.Workers > 0 {
		u.workers = cfg.Workers
	}
	return u, nil
}

func authMethods(cfg Config) ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod
	if cfg.KeyFile != "" {
		pem, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("media: read key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(pem)
		if err != nil {
			return nil, fmt.Errorf("media: parse key %s: %w", cfg.KeyFile, err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}
	if cfg.Pass != "" {
		methods = append(methods, ssh.Password(cfg.Pass))
	}
	return methods, nil
}

func hostKeyCallback(cfg Config) (ssh.HostKeyCallback, error) {
	if cfg.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	file := cfg.KnownHostsFile
	if file == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("media: known_hosts: %w", err)
		}
		file = filepath.Join(home, ".ssh", "known_hosts")
	}
	cb, err := knownhosts.New(file)
	if err != nil {
		return nil, fmt.Errorf("media: known_hosts: %w", err)
	}
	return cb, nil
}

// NewUploader wraps an open SFTP client.
func NewUploader(client *sftp.Client, remoteDir string, log logging.Logger) *Uploader {
	if remoteDir == "" {
		remoteDir = "/"
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Uploader{client: client, remoteDir: remoteDir, workers: 1, log: log}
}

// Ping checks that the session answers.
func (u *Uploader) Ping() error {
	if _, err := u.client.Getwd(); err != nil {
		return fmt.Errorf("media: ping: %w", err)
	}
	return nil
}

// Prepare creates the remote directory.
func (u *Uploader) Prepare() error {
	if err := u.client.MkdirAll(u.remoteDir); err != nil {
		return fmt.Errorf("media: mkdir %s: %w", u.remoteDir, err)
	}
	return nil
}

// Result is the outcome of UploadTree.
type Result struct {
	Uploaded int
	Skipped  int
	Bytes    int64
	Failed   []string
}

type upload struct {
	local, remote, rel string
}

// UploadTree mirrors localRoot below the remote directory. Directories are
// created first, then files are copied on the uploader's workers. Files that
// already exist remotely with the same size are skipped. A failing file is
// recorded and the others continue.
func (u *Uploader) UploadTree(ctx context.Context, localRoot string) (Result, error) {
	var res Result

	var files []upload
	err := filepath.WalkDir(localRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, err := filepath.Rel(localRoot, p)
		if err != nil {
			return err
		}
		remote := path.Join(u.remoteDir, filepath.ToSlash(rel))

		if d.IsDir() {
			if err := u.client.MkdirAll(remote); err != nil {
				return fmt.Errorf("media: mkdir %s: %w", remote, err)
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if st, err := u.client.Stat(remote); err == nil && st.Size() == info.Size() {
			res.Skipped++
			return nil
		}
		files = append(files, upload{local: p, remote: remote, rel: rel})
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("media: upload %s: %w", localRoot, err)
	}

	var mu sync.Mutex
	errs := concurrency.ForEach(ctx, files, concurrency.Options{MaxWorkers: u.workers}, func(_ context.Context, _ int, f upload) error {
		n, err := u.put(f.local, f.remote)

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			u.log.Warn("media: upload failed", "file", f.rel, "error", err)
			res.Failed = append(res.Failed, f.rel)
			return nil
		}
		res.Uploaded++
		res.Bytes += n
		u.log.Debug("media: uploaded", "file", f.rel, "size", humanize.Bytes(uint64(n)))
		return nil
	})
	sort.Strings(res.Failed)
	if len(errs) > 0 {
		return res, fmt.Errorf("media: upload %s: %w", localRoot, errors.Join(errs...))
	}
	return res, nil
}

func (u *Uploader) put(local, remote string) (int64, error) {
	src, err := os.Open(local)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	dst, err := u.client.Create(remote)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// List returns up to limit entries of the remote directory, sorted by name.
func (u *Uploader) List(limit int) ([]os.FileInfo, error) {
	entries, err := u.client.ReadDir(u.remoteDir)
	if err != nil {
		return nil, fmt.Errorf("media: list %s: %w", u.remoteDir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (u *Uploader) Close() error {
	err := u.client.Close()
	if u.conn != nil {
		if cerr := u.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
