package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/devopsnextgenx/mcp-crypto-server/internal/resources"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		URI:         resources.VersionURI,
		Name:        "version",
		Description: "Server name, version, and protocol capabilities.",
		MIMEType:    "application/json",
	}, s.resourceHandler(resources.VersionURI, func() any { return resources.Version() }))

	s.mcp.AddResource(&mcp.Resource{
		URI:         resources.StatusURI,
		Name:        "status",
		Description: "Live server status: uptime, memory, registered tools, and invocation counts.",
		MIMEType:    "application/json",
	}, s.resourceHandler(resources.StatusURI, func() any { return s.status.Snapshot() }))

	s.mcp.AddResource(&mcp.Resource{
		URI:         resources.ToolsListURI,
		Name:        "tools_list",
		Description: "Detailed listing of every registered tool with schemas and examples.",
		MIMEType:    "application/json",
	}, s.resourceHandler(resources.ToolsListURI, func() any { return s.registry.List(true) }))
}

// resourceHandler serves one JSON payload as an MCP resource.
func (s *Server) resourceHandler(uri string, payload func() any) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		data, err := json.MarshalIndent(payload(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal resource %s: %w", uri, err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
