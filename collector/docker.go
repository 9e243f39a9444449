package collector

import (
	"context"
	"log/slog"
	"strings"

	"instawatch/models"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// CollectContainers lists containers (running and stopped) whose name or
// image contains one of markers. It returns nil when Docker is unreachable.
func CollectContainers(ctx context.Context, markers []string) []models.ContainerInfo {
	if !DetectCapabilities().HasDockerSocket {
		return nil
	}

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		slog.Debug("docker client error", slog.String("error", err.Error()))
		return nil
	}
	defer cli.Close()

	list, err := cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		slog.Debug("docker list error", slog.String("error", err.Error()))
		return nil
	}

	var result []models.ContainerInfo
	for _, c := range list {
		name := ""
		if len(c.Names) > 0 {
			name = strings.TrimPrefix(c.Names[0], "/")
		}
		if !matchesAny(name, c.Image, markers) {
			continue
		}

		id := c.ID
		if len(id) > 12 {
			id = id[:12]
		}

		result = append(result, models.ContainerInfo{
			ID:      id,
			Name:    name,
			Image:   c.Image,
			Status:  c.Status,
			State:   c.State,
			Created: c.Created,
		})
	}

	return result
}

func matchesAny(name, image string, markers []string) bool {
	name = strings.ToLower(name)
	image = strings.ToLower(image)
	for _, m := range markers {
		m = strings.ToLower(m)
		if m == "" {
			continue
		}
		if strings.Contains(name, m) || strings.Contains(image, m) {
			return true
		}
	}
	return false
}
