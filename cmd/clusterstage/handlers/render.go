package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/clusterstage/internal/cloud"
	"github.com/imamik/clusterstage/internal/config"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	okStyle      = lipgloss.NewStyle().Foreground(colorGreen)
	failStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

type row struct {
	Name  string
	Value string
}

// renderSection renders a titled block of name/value rows.
func renderSection(b *strings.Builder, title string, rows []row) {
	b.WriteString(sectionStyle.Render("  " + title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 35)))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("    %s  %s\n", dimStyle.Render(fmt.Sprintf("%-18s", r.Name)), r.Value))
	}
}

func renderTitle(b *strings.Builder, title string) {
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  " + title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")
}

func optional(v string, ok bool) string {
	if !ok || v == "" {
		return dimStyle.Render("-")
	}
	return v
}

func renderProvisionSummary(cfg *config.DeploymentConfig, bucket string, req *cloud.StackRequest) string {
	var b strings.Builder
	renderTitle(&b, "clusterstage provision: "+cfg.ClusterName)

	bucketValue := okStyle.Render(bucket)
	if bucket == "" {
		bucketValue = dimStyle.Render("none (no artifacts for " + string(cfg.Scheduler) + ")")
	}
	renderSection(&b, "Staging", []row{
		{"Scheduler", string(cfg.Scheduler)},
		{"Region", cfg.Region},
		{"Cluster model", cfg.EffectiveClusterModel().String()},
		{"Bucket", bucketValue},
	})

	if req != nil {
		source := req.TemplateURL
		if source == "" {
			source = fmt.Sprintf("inline (%d bytes)", len(req.TemplateBody))
		}
		b.WriteString("\n")
		renderSection(&b, "Stack request", []row{
			{"Name", req.Name},
			{"Template", source},
			{"Capabilities", strings.Join(req.Capabilities, ", ")},
			{"Disable rollback", fmt.Sprintf("%t", req.DisableRollback)},
			{"Tags", fmt.Sprintf("%d", len(req.Tags))},
		})
	}
	b.WriteString("\n")
	return b.String()
}

func renderStackInfo(info cloud.StackInfo) string {
	var b strings.Builder
	renderTitle(&b, "stack: "+info.Name)
	renderSection(&b, "Stack", []row{
		{"ID", info.ID},
		{"Status", statusValue(info.Status)},
	})

	if keys := info.OutputKeys(); len(keys) > 0 {
		rows := make([]row, 0, len(keys))
		for _, k := range keys {
			v, ok := info.Output(k)
			rows = append(rows, row{k, optional(v, ok)})
		}
		b.WriteString("\n")
		renderSection(&b, "Outputs", rows)
	}

	if tags := info.Tags(); len(tags) > 0 {
		b.WriteString("\n")
		renderSection(&b, "Tags", tagRows(tags))
	}
	b.WriteString("\n")
	return b.String()
}

func renderInstanceInfo(info cloud.InstanceInfo) string {
	var b strings.Builder
	renderTitle(&b, "instance: "+info.ID)

	publicIP := ""
	if info.PublicIP != nil {
		publicIP = *info.PublicIP
	}
	renderSection(&b, "Instance", []row{
		{"State", statusValue(info.State)},
		{"Private IP", optional(info.PrivateIP, true)},
		{"Public IP", optional(publicIP, info.PublicIP != nil)},
	})
	b.WriteString("\n")
	return b.String()
}

func renderImageInfo(info cloud.ImageInfo) string {
	var b strings.Builder
	renderTitle(&b, "image: "+info.ID)

	size, ok := info.RootVolumeSize()
	sizeValue := optional("", false)
	if ok {
		sizeValue = fmt.Sprintf("%d GiB", size)
	}
	renderSection(&b, "Image", []row{
		{"Name", optional(info.Name, true)},
		{"Description", optional(info.Description, true)},
		{"State", statusValue(info.State)},
		{"Architecture", optional(info.Architecture, true)},
		{"Root volume", sizeValue},
	})

	if devices := info.BlockDeviceMappings(); len(devices) > 0 {
		rows := make([]row, 0, len(devices))
		for _, d := range devices {
			v := "instance store"
			if d.EBS != nil {
				v = fmt.Sprintf("ebs %s %d GiB", d.EBS.VolumeType, d.EBS.VolumeSize)
			}
			rows = append(rows, row{d.DeviceName, v})
		}
		b.WriteString("\n")
		renderSection(&b, "Block devices", rows)
	}

	if tags := info.Tags(); len(tags) > 0 {
		b.WriteString("\n")
		renderSection(&b, "Tags", tagRows(tags))
	}
	b.WriteString("\n")
	return b.String()
}

func tagRows(tags []cloud.Tag) []row {
	rows := make([]row, len(tags))
	for i, t := range tags {
		rows[i] = row{t.Key, t.Value}
	}
	return rows
}

// statusValue colors provider states: failures red, completed green.
func statusValue(status string) string {
	s := strings.ToUpper(status)
	switch {
	case status == "":
		return dimStyle.Render("-")
	case strings.Contains(s, "FAILED"), strings.Contains(s, "ROLLBACK"), s == "TERMINATED":
		return failStyle.Render(status)
	case strings.HasSuffix(s, "_COMPLETE"), s == "RUNNING", s == "AVAILABLE":
		return okStyle.Render(status)
	default:
		return status
	}
}
