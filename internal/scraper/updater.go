package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/log"
	"github.com/lumina-cli/lumina/network"
)

// Install downloads remoteURL into localPath. It reports false when the local copy is already identical.
func Install(ctx context.Context, remoteURL, localPath string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := network.Client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("download %s: status code %d", remoteURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}

	if local, err := filesystem.API().ReadFile(localPath); err == nil && digest(local) == digest(body) {
		log.Infof("addon %s is up to date", localPath)
		return false, nil
	}

	if err := filesystem.WriteAtomic(localPath, body, 0o644); err != nil {
		return false, err
	}

	log.Infof("installed addon %s from %s", localPath, remoteURL)
	return true, nil
}
