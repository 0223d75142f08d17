// Package types provides the records exchanged with the outreach backend.
//
// Field names follow the backend's JSON. Timestamps are kept as the strings
// the backend emits; they are naive ISO-8601 values without a zone and are
// only ever displayed.
//
// Core Types:
//   - Prospect, ProspectPage: discovered Instagram profiles
//   - Campaign, CampaignCreate: outreach campaigns
//   - InstagramAccount and its Create/Update payloads: sender accounts
//   - DashboardStats, Performance: overview and analytics
//   - Deployment, CoolifyConfig: Coolify deployments
//   - TokenResponse: login exchange result
//
// Status Enums:
//   - ProspectStatus: discovered → qualified → messaged → responded → converted | rejected
//   - CampaignStatus: active, paused, completed
//   - DeploymentStatus: pending, building, deploying, running, failed, stopped
package types
